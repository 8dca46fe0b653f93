package services

import (
	"errors"
	"fmt"
)

var (
	// ErrProvinceNotFound is returned when a comparison names a province
	// absent from the aggregated dataset.
	ErrProvinceNotFound = errors.New("province not found in the dataset")

	// ErrInvalidConfidenceLevel is returned for a level outside (0, 1).
	ErrInvalidConfidenceLevel = errors.New("confidence level must be between 0 and 1 exclusive")
)

// ProvinceNotFoundError carries the name that failed the lookup. It matches
// ErrProvinceNotFound under errors.Is.
type ProvinceNotFoundError struct {
	Name string
}

func (e *ProvinceNotFoundError) Error() string {
	return fmt.Sprintf("province %q not found in the dataset", e.Name)
}

func (e *ProvinceNotFoundError) Is(target error) bool {
	return target == ErrProvinceNotFound
}
