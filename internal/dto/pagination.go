package dto

import "teslo/internal/apperrors"

// PaginationDTO is the limit/offset contract of list endpoints. Both values
// are optional; callers apply their own defaults.
type PaginationDTO struct {
	Limit  *int `query:"limit" validate:"omitnil,min=1"`
	Offset *int `query:"offset" validate:"omitnil,min=0"`
}

// Validate checks the ranges of the present values.
func (p *PaginationDTO) Validate() error {
	return validateStruct(p)
}

// LimitOr returns the limit or def when it is absent.
func (p PaginationDTO) LimitOr(def int) int {
	if p.Limit == nil {
		return def
	}
	return *p.Limit
}

// OffsetOr returns the offset or def when it is absent.
func (p PaginationDTO) OffsetOr(def int) int {
	if p.Offset == nil {
		return def
	}
	return *p.Offset
}

// QueryParser is satisfied by *fiber.Ctx.
type QueryParser interface {
	QueryParser(out interface{}) error
}

// ParsePagination coerces the query string into a validated PaginationDTO.
func ParsePagination(c QueryParser) (PaginationDTO, error) {
	var p PaginationDTO
	if err := c.QueryParser(&p); err != nil {
		return PaginationDTO{}, apperrors.Validation("limit and offset must be numbers")
	}
	if err := p.Validate(); err != nil {
		return PaginationDTO{}, err
	}
	return p, nil
}
