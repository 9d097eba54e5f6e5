package material

// BodyPaint is the paint color of the body shell and door panel.
const BodyPaint = 0xF5ED07

// Enhanced builds a physical material that keeps the look captured in s
// and adds clearcoat and reflections.
func Enhanced(s Snapshot) *Material {
	m := NewPhysical()
	m.Color = s.Color
	m.Emissive = s.Emissive
	m.EmissiveIntensity = s.EmissiveIntensity
	m.Texture = s.Texture
	m.Roughness = s.Roughness
	m.Metalness = s.Metalness
	m.Transparent = s.Transparent
	m.Opacity = s.Opacity

	m.Clearcoat = 1.0
	m.ClearcoatRoughness = 0.1
	m.Reflectivity = 0.5
	m.EnvMapIntensity = 1.0
	m.DoubleSided = true
	return m
}

// Paint builds the car body paint.
func Paint() *Material {
	m := NewStandard()
	m.Name = "paint"
	m.Color = Hex(BodyPaint)
	m.Roughness = 1
	m.Metalness = 0.7
	m.Clearcoat = 1.0
	m.ClearcoatRoughness = 0.1
	m.Reflectivity = 0.5
	m.EnvMapIntensity = 1.0
	return m
}

// Ghost builds a near invisible material for click targets that must not
// occlude what is behind them.
func Ghost() *Material {
	m := NewPhysical()
	m.Name = "ghost"
	m.Color = Hex(0x000000)
	m.Roughness = 0.1
	m.Metalness = 0
	m.IOR = 0.4
	m.Opacity = 0.007
	m.Transparent = true
	m.DoubleSided = true
	m.DepthWrite = false
	return m
}

// Lit builds the plain white material a headlight wears while switched on.
func Lit() *Material {
	m := NewPhysical()
	m.Name = "lit"
	m.Color = Hex(0xffffff)
	m.Emissive = Hex(0xffffff)
	m.EmissiveIntensity = 1
	return m
}
