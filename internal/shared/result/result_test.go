package result_test

import (
	"net/http"
	"testing"

	"go-pos/internal/shared/result"

	"github.com/stretchr/testify/assert"
)

func assertEnvelope(t *testing.T, r result.Result) {
	t.Helper()
	if r.Success {
		assert.Nil(t, r.Errors)
		return
	}
	assert.True(t, r.Message != "" || len(r.Errors) > 0, "failed result needs message or errors")
}

func TestEnvelopeInvariant(t *testing.T) {
	values := map[string]string{"name": ""}
	all := []result.Result{
		result.OK("saved"),
		result.Invalid(result.FieldErrors{"name": {"Name is required"}}, values),
		result.Invalid(nil, values),
		result.NotFound("id", nil),
		result.Conflict("Branch already exists", values),
		result.Fail(""),
	}
	for _, r := range all {
		assertEnvelope(t, r)
	}
}

func TestInvalid_EchoesValues(t *testing.T) {
	values := map[string]string{"name": ""}
	r := result.Invalid(result.FieldErrors{"name": {"Name is required"}}, values)
	assert.False(t, r.Success)
	assert.Equal(t, values, r.Values)
	assert.Equal(t, http.StatusUnprocessableEntity, r.StatusCode(false))
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusCreated, result.OK("").StatusCode(true))
	assert.Equal(t, http.StatusOK, result.OK("").StatusCode(false))
	assert.Equal(t, http.StatusNotFound, result.NotFound("id", nil).StatusCode(false))
	assert.Equal(t, http.StatusConflict, result.Conflict("dup", nil).StatusCode(false))
	assert.Equal(t, http.StatusInternalServerError, result.Fail("").StatusCode(false))
}
