package gather

import (
	"errors"
	"fmt"

	"github.com/xnaught/PresentMon-sub004/pkg/blob"
	"github.com/xnaught/PresentMon-sub004/pkg/query"
)

var (
	ErrUnknownField  = errors.New("metric not present in frame record")
	ErrFieldMismatch = errors.New("frame record field type mismatch")
	ErrNotFrameQuery = errors.New("gather requires a frame schema")
)

// CopyCommand moves one element from the source record into a blob.
// DestPadding bytes immediately before DestOffset are zeroed.
type CopyCommand struct {
	SourceOffset uint64
	DestOffset   uint64
	Size         uint64
	DestPadding  uint64
}

// Program is a compiled gather: the copy list for one frame query.
type Program struct {
	commands   []CopyCommand
	statics    []query.Element
	sourceSize uint64
	blobSize   uint64
	tailStart  uint64
}

// Compile derives the copy commands for schema from layout. Unavailable
// elements produce no command. Static elements missing from the layout are
// not copied; their slots are zeroed by Gather and left for the caller to
// fill, see Statics. A layout field whose data type differs from its
// element's fails with ErrFieldMismatch even when the sizes agree.
func Compile(schema *query.Schema, layout *Layout) (*Program, error) {
	if schema.Mode != query.Frame {
		return nil, ErrNotFrameQuery
	}
	p := &Program{
		sourceSize: layout.Size(),
		blobSize:   schema.BlobSize,
		tailStart:  schema.BlobSize - schema.TailPadding,
	}
	for i, e := range schema.Elements {
		if !e.Available {
			continue
		}
		off, dt, ok := layout.Lookup(e.Metric, e.ArrayIndex)
		if !ok && e.Static {
			p.statics = append(p.statics, e)
			continue
		}
		if !ok {
			return nil, fmt.Errorf("element %d: %w: %s[%d]", i, ErrUnknownField, e.Metric, e.ArrayIndex)
		}
		if dt != e.DataType || dt.Size() != e.Size {
			return nil, fmt.Errorf("element %d: %w: %s is %s in record, %s in query",
				i, ErrFieldMismatch, e.Metric, dt, e.DataType)
		}
		p.commands = append(p.commands, CopyCommand{
			SourceOffset: off,
			DestOffset:   e.Offset,
			Size:         e.Size,
			DestPadding:  e.Padding,
		})
	}
	return p, nil
}

// Commands returns a copy of the compiled command list.
func (p *Program) Commands() []CopyCommand {
	return append([]CopyCommand(nil), p.commands...)
}

func (p *Program) BlobSize() uint64 { return p.blobSize }

// Statics returns the static elements the program does not copy.
func (p *Program) Statics() []query.Element {
	return append([]query.Element(nil), p.statics...)
}

// Gather copies one source record into dst.
func (p *Program) Gather(src, dst []byte) error {
	if uint64(len(src)) < p.sourceSize {
		return fmt.Errorf("%w: source is %d bytes, need %d", blob.ErrOutOfBounds, len(src), p.sourceSize)
	}
	if uint64(len(dst)) < p.blobSize {
		return fmt.Errorf("%w: destination is %d bytes, need %d", blob.ErrOutOfBounds, len(dst), p.blobSize)
	}
	for _, c := range p.commands {
		clear(dst[c.DestOffset-c.DestPadding : c.DestOffset])
		copy(dst[c.DestOffset:c.DestOffset+c.Size], src[c.SourceOffset:c.SourceOffset+c.Size])
	}
	for _, e := range p.statics {
		clear(dst[e.Offset-e.Padding : e.Offset+e.Size])
	}
	clear(dst[p.tailStart:p.blobSize])
	return nil
}
