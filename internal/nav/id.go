package nav

// FlowFieldID uniquely identifies a cached flow field by its chunk, layer
// and target. Two requests that hash to the same id are interchangeable.
type FlowFieldID uint64

// FlowFieldIDFor packs the field identity. Portal-mask targets are
// transient, never cached, and so have no id.
func FlowFieldIDFor(chunk Coord, target FieldTarget, layer Layer) FlowFieldID {
	switch target.Type {
	case TargetPortal:
		return FlowFieldID(uint64(layer)<<60 |
			uint64(target.Type)<<56 |
			uint64(target.Port.Endpoints[0].R)<<40 |
			uint64(target.Port.Endpoints[0].C)<<32 |
			uint64(target.Port.Endpoints[1].R)<<24 |
			uint64(target.Port.Endpoints[1].C)<<16 |
			uint64(chunk.R)<<8 |
			uint64(chunk.C))
	case TargetTile:
		return FlowFieldID(uint64(layer)<<60 |
			uint64(target.Type)<<56 |
			uint64(target.Tile.R)<<24 |
			uint64(target.Tile.C)<<16 |
			uint64(chunk.R)<<8 |
			uint64(chunk.C))
	case TargetEnemies:
		return FlowFieldID(uint64(layer)<<60 |
			uint64(target.Type)<<56 |
			uint64(uint16(target.Enemies.FactionID))<<24 |
			uint64(chunk.R)<<8 |
			uint64(chunk.C))
	default:
		panic("nav: no flow field id for this target type")
	}
}

// FlowFieldLayer extracts the layer from a flow field id.
func FlowFieldLayer(id FlowFieldID) Layer {
	return Layer(id >> 60)
}

// FlowFieldChunk extracts the chunk coordinate from a flow field id.
func FlowFieldChunk(id FlowFieldID) Coord {
	return Coord{uint8(id >> 8), uint8(id)}
}

// DestID identifies a path destination: the layer and faction the path was
// requested for plus the destination tile. LOS fields are cached under it.
type DestID uint64

// MakeDestID packs a destination id.
func MakeDestID(layer Layer, factionID int, chunk Coord, tile Coord) DestID {
	return DestID(uint64(layer)<<60 |
		uint64(uint16(factionID))<<44 |
		uint64(chunk.R)<<24 |
		uint64(chunk.C)<<16 |
		uint64(tile.R)<<8 |
		uint64(tile.C))
}

// DestLayer extracts the layer from a destination id.
func DestLayer(id DestID) Layer {
	return Layer(id >> 60)
}

// DestFactionID extracts the faction from a destination id.
func DestFactionID(id DestID) int {
	return int(int16(id >> 44 & 0xFFFF))
}

// DestChunk extracts the destination chunk coordinate.
func DestChunk(id DestID) Coord {
	return Coord{uint8(id >> 24), uint8(id >> 16)}
}

// DestTile extracts the destination tile coordinate within its chunk.
func DestTile(id DestID) Coord {
	return Coord{uint8(id >> 8), uint8(id)}
}
