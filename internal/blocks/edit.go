package blocks

// Op names an editing operation carried by an Edit.
type Op string

const (
	OpInsertAfter    Op = "insertAfter"
	OpUpdateFields   Op = "updateFields"
	OpMoveBlock      Op = "moveBlock"
	OpDuplicateBlock Op = "duplicateBlock"
	OpRemoveBlock    Op = "removeBlock"
)

// Edit is a serializable editing command, the wire form of one Store operation.
type Edit struct {
	Op        Op        `json:"op" yaml:"op"`
	ID        string    `json:"id,omitempty" yaml:"id,omitempty"`
	AnchorID  string    `json:"anchor_id,omitempty" yaml:"anchor_id,omitempty"`
	Kind      Kind      `json:"variant,omitempty" yaml:"variant,omitempty"`
	Direction Direction `json:"direction,omitempty" yaml:"direction,omitempty"`
	Fields    Patch     `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// EditResult reports whether an Edit changed the document. BlockID is the block created
// by an insert or duplicate, or the target of the other operations.
type EditResult struct {
	Applied bool   `json:"applied"`
	BlockID string `json:"block_id,omitempty"`
}

// Apply dispatches e to the matching Store operation. Unknown ops are ignored.
func (s *Store) Apply(e Edit) EditResult {
	switch e.Op {
	case OpInsertAfter:
		b, ok := s.InsertAfter(e.AnchorID, e.Kind)
		return EditResult{Applied: ok, BlockID: b.ID}
	case OpUpdateFields:
		return EditResult{Applied: s.UpdateFields(e.ID, e.Fields), BlockID: e.ID}
	case OpMoveBlock:
		return EditResult{Applied: s.MoveBlock(e.ID, e.Direction), BlockID: e.ID}
	case OpDuplicateBlock:
		b, ok := s.DuplicateBlock(e.ID)
		return EditResult{Applied: ok, BlockID: b.ID}
	case OpRemoveBlock:
		return EditResult{Applied: s.RemoveBlock(e.ID), BlockID: e.ID}
	default:
		s.ignored(string(e.Op), e.ID, "unknown op")
		return EditResult{}
	}
}
