package logsvc

import (
	"bytes"
	"log"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/trezcool/registrar/core"
	"github.com/trezcool/registrar/core/session"
)

func Test_personID(t *testing.T) {
	tests := []struct {
		name string
		p    session.Profile
		want string
	}{
		{name: "national ID first", p: session.Profile{Username: "admin", NID: 29901011234567}, want: "29901011234567"},
		{name: "username otherwise", p: session.Profile{Username: "admin"}, want: "admin"},
		{name: "anonymous", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, personID(tt.p))
		})
	}
}

func TestRollbarLogger_prepare(t *testing.T) {
	logger := NewRollbarLogger(log.New(new(bytes.Buffer), "", 0), &core.Config{Env: "TEST"})
	logger.Enable(false)

	err := errors.New("boom")
	fields := map[string]interface{}{"path": "/api/x/"}
	got := logger.prepare("request failed", []interface{}{err, session.Profile{Username: "admin"}, fields})
	assert.Equal(t, []interface{}{"request failed", err, fields}, got, "profiles are not forwarded")

	got = logger.prepare("request failed", []interface{}{session.Profile{}})
	assert.Equal(t, []interface{}{"request failed"}, got)
}

func TestRollbarLogger_print(t *testing.T) {
	buf := new(bytes.Buffer)
	logger := NewRollbarLogger(log.New(buf, "TEST : ", 0), &core.Config{Env: "TEST"})
	logger.Enable(false)

	logger.Warn("backend request failed", map[string]interface{}{"status": 502})
	assert.Equal(t, "TEST : backend request failed\nTEST : map[status:502]\n", buf.String())
}
