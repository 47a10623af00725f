package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvOr(t *testing.T) {
	t.Setenv("QP_TEST_KEY", "value")
	assert.Equal(t, "value", EnvOr("QP_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", EnvOr("QP_TEST_MISSING", "fallback"))
}

func TestEnvIntOr(t *testing.T) {
	t.Setenv("QP_TEST_INT", "42")
	assert.Equal(t, 42, EnvIntOr("QP_TEST_INT", 7))
	t.Setenv("QP_TEST_INT", "not-a-number")
	assert.Equal(t, 7, EnvIntOr("QP_TEST_INT", 7))
	assert.Equal(t, 7, EnvIntOr("QP_TEST_INT_MISSING", 7))
}

func TestSessionIDPrefersClientHeader(t *testing.T) {
	r := httptest.NewRequest("POST", "/api/track", nil)
	r.Header.Set(SessionHeader, "client-session")
	assert.Equal(t, "client-session", SessionID(r))
}

func TestSessionIDGeneratedWhenAbsent(t *testing.T) {
	r := httptest.NewRequest("POST", "/api/track", nil)
	id := SessionID(r)
	assert.NotEmpty(t, id)
	assert.NotEqual(t, id, SessionID(r), "each call without a header yields a fresh id")
}
