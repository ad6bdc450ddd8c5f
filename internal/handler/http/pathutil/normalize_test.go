package pathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/", "/"},
		{"", "/"},
		{"/sentimentAnalyzer", "/sentimentAnalyzer"},
		{"/sentimentAnalyzer?textToAnalyze=hello", "/sentimentAnalyzer"},
		{"/health", "/health"},
		{"/live", "/live"},
		{"/metrics", "/metrics"},
		{"/static/mywebscript.js", "/static/*"},
		{"/static/", "/static/*"},
		{"/swagger/index.html", "/swagger/*"},
		{"/sentimentAnalyzer/extra", Other},
		{"/static", Other},
		{"/does-not-exist", Other},
		{"/../etc/passwd", Other},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePath(tt.path))
		})
	}
}

func TestCardinality(t *testing.T) {
	assert.Equal(t, 8, Cardinality())
}
