package exports

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectSource(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		shape   Shape
		isMixed bool
	}{
		{
			name:   "default only",
			source: "export default function foo() {}",
			shape:  Shape{HasDefault: true},
		},
		{
			name:   "named const",
			source: "export const bar = 1",
			shape:  Shape{HasNamed: true},
		},
		{
			name:   "named let",
			source: "export let counter = 0",
			shape:  Shape{HasNamed: true},
		},
		{
			name:   "named function",
			source: "export function helper() {}",
			shape:  Shape{HasNamed: true},
		},
		{
			name:   "named async function",
			source: "export async function load() {}",
			shape:  Shape{HasNamed: true},
		},
		{
			name:   "named class",
			source: "export class Widget {}",
			shape:  Shape{HasNamed: true},
		},
		{
			name:   "export list",
			source: "const a = 1\nexport { a }",
			shape:  Shape{HasNamed: true},
		},
		{
			name:   "export list no space",
			source: "export{a}",
			shape:  Shape{HasNamed: true},
		},
		{
			name:    "mixed shape",
			source:  "export default foo\nexport const bar = 1",
			shape:   Shape{HasDefault: true, HasNamed: true},
			isMixed: true,
		},
		{
			name:   "no exports",
			source: "const internal = 1",
			shape:  Shape{},
		},
		{
			name:   "word boundary respected",
			source: "reexportDefault()",
			shape:  Shape{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectSource([]byte(tt.source))
			assert.Equal(t, tt.shape, got)
			assert.Equal(t, tt.isMixed, got.Mixed())
		})
	}
}

func TestDetect_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index.js")
	require.NoError(t, os.WriteFile(path, []byte("export default 1\nexport { x }"), 0o644))

	got := Detect(path)
	assert.True(t, got.Mixed())
}

func TestDetect_UnreadableFileIsSafeDefault(t *testing.T) {
	got := Detect(filepath.Join(t.TempDir(), "missing.js"))
	assert.Equal(t, Shape{}, got)
	assert.False(t, got.Mixed())
}
