package scene

// Layer is a render pass membership bit.
type Layer uint8

const (
	LayerDefault Layer = 0
	LayerBloom   Layer = 1
)

// Layers is a bitmask of render layers.
type Layers uint32

// DefaultLayers contains only the default layer.
const DefaultLayers = Layers(1 << LayerDefault)

// Set makes l the only member layer.
func (ls *Layers) Set(l Layer) {
	*ls = Layers(1) << l
}

// Enable adds l.
func (ls *Layers) Enable(l Layer) {
	*ls |= Layers(1) << l
}

// Disable removes l.
func (ls *Layers) Disable(l Layer) {
	*ls &^= Layers(1) << l
}

// Test reports whether l is a member.
func (ls Layers) Test(l Layer) bool {
	return ls&(Layers(1)<<l) != 0
}
