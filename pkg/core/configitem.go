package core

// ConfigItem is the unit of transform plugin and preset identity: a
// resolved module path plus an options record. Two items are the same
// plugin iff their resolved paths are equal; that identity is the merge
// key, never an equality over options.
type ConfigItem struct {
	// Path is the canonical resolved module path of the plugin or preset.
	Path string
	// Options is the plugin's configuration record. May be nil.
	Options map[string]any
}

// SamePlugin reports whether two items denote the same plugin module.
func (c ConfigItem) SamePlugin(other ConfigItem) bool {
	return c.Path == other.Path
}
