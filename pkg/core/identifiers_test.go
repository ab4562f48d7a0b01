package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoveScope(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "scoped", input: "@acme/widgets", expected: "widgets"},
		{name: "unscoped", input: "widgets", expected: "widgets"},
		{name: "scope without slash", input: "@acme", expected: "@acme"},
		{name: "nested path kept", input: "@acme/widgets/extra", expected: "widgets/extra"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RemoveScope(tt.input))
		})
	}
}

func TestSafeModuleName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain", input: "acme", expected: "acme"},
		{name: "dashed", input: "my-package", expected: "myPackage"},
		{name: "scoped dashed", input: "@acme/my-widgets", expected: "myWidgets"},
		{name: "dotted", input: "socket.io", expected: "socketIo"},
		{name: "leading digits dropped", input: "2good", expected: "good"},
		{name: "trailing separators dropped", input: "pkg--", expected: "pkg"},
		{name: "uppercase folded", input: "MyLib", expected: "mylib"},
		{name: "invalid runes removed", input: "a!b#c", expected: "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SafeModuleName(tt.input))
		})
	}
}

func TestIsBareIdentifier(t *testing.T) {
	assert.True(t, IsBareIdentifier("react"))
	assert.True(t, IsBareIdentifier("_private"))
	assert.True(t, IsBareIdentifier("$jquery"))
	assert.False(t, IsBareIdentifier("@scope/pkg"))
	assert.False(t, IsBareIdentifier("my-lib"))
	assert.False(t, IsBareIdentifier("1abc"))
	assert.False(t, IsBareIdentifier(""))
}
