package transport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	tr := New(5 * time.Second)
	assert.Equal(t, 5*time.Second, tr.ResponseHeaderTimeout)
	assert.Equal(t, 5*time.Second, tr.TLSHandshakeTimeout)

	tr = New(0)
	assert.Equal(t, DefaultTimeout, tr.ResponseHeaderTimeout)
}

func TestNewClient(t *testing.T) {
	c := NewClient(Seconds(20))
	assert.Equal(t, 20*time.Second, c.Timeout)
	assert.NotNil(t, c.Transport)

	c = NewClient(-1)
	assert.Equal(t, DefaultTimeout, c.Timeout)
}
