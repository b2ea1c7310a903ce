package cv_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/murkland/corevideo/cv"
	"github.com/stretchr/testify/assert"
)

func TestReturnErr(t *testing.T) {
	assert.NoError(t, cv.ReturnSuccess.Err())

	err := cv.ReturnInvalidPoolAttributes.Err()
	assert.Error(t, err)
	assert.Equal(t, "cv: kCVReturnInvalidPoolAttributes (-6691)", err.Error())
}

func TestReturnString(t *testing.T) {
	assert.Equal(t, "kCVReturnSuccess", cv.ReturnSuccess.String())
	assert.Equal(t, "kCVReturnRetry", cv.ReturnRetry.String())
	assert.Equal(t, "CVReturn(-1)", cv.Return(-1).String())
}

func TestReturnSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("vend: %w", cv.ReturnPoolAllocationFailed)
	assert.True(t, errors.Is(err, cv.ReturnPoolAllocationFailed))

	var ret cv.Return
	assert.True(t, errors.As(err, &ret))
	assert.Equal(t, cv.ReturnPoolAllocationFailed, ret)
}
