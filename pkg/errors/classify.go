package errors

import (
	"context"
	"errors"
	"net/http"

	"github.com/vasudevanv/porespy/pkg/generators"
	"github.com/vasudevanv/porespy/pkg/packing"
	"github.com/vasudevanv/porespy/pkg/pipeline"
	"github.com/vasudevanv/porespy/pkg/voxel"
)

// Classify maps a library error onto a structured code. Already structured
// errors keep their code; unknown errors become ErrCodeInternal. A nil error
// classifies to nil.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}

	code := ErrCodeInternal
	switch {
	case errors.Is(err, packing.ErrRadius):
		code = ErrCodeInvalidRadius
	case errors.Is(err, packing.ErrClearance):
		code = ErrCodeInvalidClearance
	case errors.Is(err, packing.ErrProtrusion):
		code = ErrCodeInvalidProtrusion
	case errors.Is(err, packing.ErrMaxIter):
		code = ErrCodeInvalidMaxIter
	case errors.Is(err, packing.ErrShapeMismatch):
		code = ErrCodeShapeMismatch
	case errors.Is(err, packing.ErrDims),
		errors.Is(err, voxel.ErrEmptyShape),
		errors.Is(err, voxel.ErrDataLength):
		code = ErrCodeInvalidShape
	case errors.Is(err, generators.ErrLattice),
		errors.Is(err, generators.ErrGeneratorParam),
		errors.Is(err, pipeline.ErrGenerator):
		code = ErrCodeInvalidGenerator
	case errors.Is(err, pipeline.ErrFormat):
		code = ErrCodeInvalidFormat
	case errors.Is(err, pipeline.ErrInput):
		code = ErrCodeInvalidInput
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		code = ErrCodeCancelled
	}
	return Wrap(code, err, "%s", UserMessage(err))
}

// HTTPStatus maps an error code onto the HTTP status the API should answer
// with.
func HTTPStatus(code Code) int {
	switch code {
	case ErrCodeInvalidInput, ErrCodeInvalidRadius, ErrCodeInvalidClearance,
		ErrCodeInvalidProtrusion, ErrCodeInvalidMaxIter, ErrCodeShapeMismatch,
		ErrCodeInvalidShape, ErrCodeInvalidFormat, ErrCodeInvalidGenerator:
		return http.StatusBadRequest
	case ErrCodeNotFound, ErrCodeFileNotFound:
		return http.StatusNotFound
	case ErrCodeCancelled:
		return 499 // client closed request
	case ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
