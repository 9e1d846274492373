package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"message wins", `{"msg":"d","detail":"c","error":"b","message":"a"}`, "a"},
		{"error before detail", `{"detail":"c","error":"b"}`, "b"},
		{"detail before msg", `{"msg":"d","detail":"c"}`, "c"},
		{"msg", `{"msg":"d"}`, "d"},
		{"blank skipped", `{"message":"  ","error":"b"}`, "b"},
		{"non-string skipped", `{"message":{"code":1},"detail":"c"}`, "c"},
		{"no fields", `{"status":"bad"}`, "fallback"},
		{"array body", `["x"]`, "fallback"},
		{"not json", `oops`, "fallback"},
		{"empty", ``, "fallback"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractMessage([]byte(tt.body), "fallback"))
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "transport", KindTransport.String())
	assert.Equal(t, "unauthorized", KindUnauthorized.String())
	assert.Equal(t, "application", KindApplication.String())
	assert.Equal(t, "decode", KindDecode.String())
	assert.Equal(t, "kind(99)", Kind(99).String())
}
