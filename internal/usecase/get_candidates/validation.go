package get_candidates

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	if req.PartyKey == "" {
		return fmt.Errorf("%w: partyKey is required", ErrInvalidInput)
	}

	if req.DurationSlots < 1 {
		return fmt.Errorf("%w: durationSlots must be positive", ErrInvalidInput)
	}

	if req.SpecialistID != nil && *req.SpecialistID <= 0 {
		return fmt.Errorf("%w: specialistID must be positive", ErrInvalidInput)
	}

	return nil
}
