package blocks

import "content-backend/internal/logger"

// Direction is the way MoveBlock shifts a block.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// Store is the editing handle around one Document. Every operation builds a candidate
// sequence and publishes its normalized form, so Blocks always returns a canonical
// document. Operations that cannot apply (unknown id, boundary move, removing the last
// content block, duplicating or removing the Media marker) leave the document unchanged
// and report false.
//
// A Store belongs to a single editing session and is not safe for concurrent use.
type Store struct {
	doc    Document
	policy Policy
	log    logger.Logger
}

type Option func(*Store)

// WithPolicy sets the media placement policy used after each edit.
func WithPolicy(p Policy) Option {
	return func(s *Store) { s.policy = p }
}

// WithLogger sets the logger that records ignored edits at debug level.
func WithLogger(l logger.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// NewStore opens a fresh document: one empty paragraph followed by the Media marker.
func NewStore(opts ...Option) *Store {
	return LoadStore(Document{New(KindParagraph)}, opts...)
}

// LoadStore opens an existing document, normalizing it first.
func LoadStore(doc Document, opts ...Option) *Store {
	s := &Store{policy: DefaultPolicy, log: logger.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	s.doc = s.policy.Normalize(doc)
	return s
}

// Blocks returns a copy of the current document.
func (s *Store) Blocks() Document {
	return s.doc.Clone()
}

func (s *Store) Len() int {
	return len(s.doc)
}

// Find returns a copy of the block with the given id.
func (s *Store) Find(id string) (Block, bool) {
	i := s.doc.IndexOf(id)
	if i < 0 {
		return Block{}, false
	}
	return s.doc[i].deepCopy(), true
}

// Media returns the Media marker.
func (s *Store) Media() Block {
	return s.doc[s.doc.MediaIndex()]
}

// InsertAfter creates a block of the given kind right after anchorID and returns it.
// Inserting a second Media marker is refused.
func (s *Store) InsertAfter(anchorID string, kind Kind) (Block, bool) {
	i := s.doc.IndexOf(anchorID)
	if i < 0 {
		s.ignored("insert", anchorID, "anchor not found")
		return Block{}, false
	}
	if kind == KindMedia {
		s.ignored("insert", anchorID, "media block already present")
		return Block{}, false
	}
	b := New(kind)
	s.publish(insertAt(s.doc, i+1, b))
	return b.deepCopy(), true
}

// UpdateFields merges patch into the block's payload.
func (s *Store) UpdateFields(id string, patch Patch) bool {
	i := s.doc.IndexOf(id)
	if i < 0 {
		s.ignored("update", id, "block not found")
		return false
	}
	if s.doc[i].IsMedia() {
		s.ignored("update", id, "media block has no payload")
		return false
	}
	updated, ok := patch.apply(s.doc[i])
	if !ok {
		s.ignored("update", id, "no applicable fields")
		return false
	}
	next := s.doc.Clone()
	next[i] = updated
	s.publish(next)
	return true
}

// MoveBlock swaps the block with its neighbour in the given direction. A move that
// normalization reverts, such as the only content block below the Media marker, reports
// false.
func (s *Store) MoveBlock(id string, dir Direction) bool {
	i := s.doc.IndexOf(id)
	if i < 0 {
		s.ignored("move", id, "block not found")
		return false
	}
	j := i - 1
	if dir == Down {
		j = i + 1
	} else if dir != Up {
		s.ignored("move", id, "unknown direction")
		return false
	}
	if j < 0 || j >= len(s.doc) {
		s.ignored("move", id, "at boundary")
		return false
	}
	next := s.doc.Clone()
	next[i], next[j] = next[j], next[i]
	before := s.doc
	s.publish(next)
	if sameOrder(before, s.doc) {
		s.ignored("move", id, "order restored by normalization")
		return false
	}
	return true
}

// DuplicateBlock inserts a copy of the block under a new id right after it.
func (s *Store) DuplicateBlock(id string) (Block, bool) {
	i := s.doc.IndexOf(id)
	if i < 0 {
		s.ignored("duplicate", id, "block not found")
		return Block{}, false
	}
	if s.doc[i].IsMedia() {
		s.ignored("duplicate", id, "media block is a singleton")
		return Block{}, false
	}
	clone := Clone(s.doc[i])
	s.publish(insertAt(s.doc, i+1, clone))
	return clone.deepCopy(), true
}

// RemoveBlock deletes the block unless it is the Media marker or the last content block.
func (s *Store) RemoveBlock(id string) bool {
	i := s.doc.IndexOf(id)
	if i < 0 {
		s.ignored("remove", id, "block not found")
		return false
	}
	if s.doc[i].IsMedia() {
		s.ignored("remove", id, "media block cannot be removed")
		return false
	}
	if s.doc.ContentCount() <= 1 {
		s.ignored("remove", id, "last content block")
		return false
	}
	next := make(Document, 0, len(s.doc)-1)
	next = append(next, s.doc[:i]...)
	next = append(next, s.doc[i+1:]...)
	s.publish(next)
	return true
}

func (s *Store) publish(candidate Document) {
	s.doc = s.policy.Normalize(candidate)
}

func sameOrder(a, b Document) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			return false
		}
	}
	return true
}

func (s *Store) ignored(op, id, reason string) {
	s.log.Debug("block edit ignored", "op", op, "block_id", id, "reason", reason)
}
