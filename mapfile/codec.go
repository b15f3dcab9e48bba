package mapfile

import (
	"bufio"
	"io"

	"github.com/pkg/errors"

	"serpens/game/types"
)

var (
	// ErrTruncatedMap is returned when the input ends before every cell
	// has been read.
	ErrTruncatedMap = errors.New("map ended before all tiles were read")
	// ErrMissingSpawn is returned when a map meant for play has no spawn.
	ErrMissingSpawn = errors.New("map has no spawn tile")
)

const (
	charEmpty     = '.'
	charWall      = '#'
	charSpawn     = 's'
	charInfertile = 'x'
)

// DecodeResult carries diagnostics gathered while decoding.
type DecodeResult struct {
	// SpawnMarkers counts the 's' characters seen. Only the last one is kept.
	SpawnMarkers int
	// Unknown counts characters that were read as empty.
	Unknown int
}

// Decode reads exactly GridWidth*GridHeight tile characters from r. Line
// terminators are skipped without consuming a column and unknown characters
// decode as Empty. When several spawn markers are present the last one wins
// and the earlier ones decode as Empty.
func Decode(r io.Reader) (*Layout, DecodeResult, error) {
	var res DecodeResult
	br := bufio.NewReader(r)
	l := NewLayout()
	for y := 0; y < types.GridHeight; y++ {
		for x := 0; x < types.GridWidth; {
			c, err := br.ReadByte()
			if err == io.EOF {
				return nil, res, errors.Wrapf(ErrTruncatedMap, "at row %d column %d", y, x)
			}
			if err != nil {
				return nil, res, errors.Wrap(err, "read map")
			}
			var t Tile
			switch c {
			case '\r', '\n':
				continue
			case charEmpty:
				t = Empty
			case charWall:
				t = Wall
			case charSpawn:
				t = Spawn
				res.SpawnMarkers++
			case charInfertile:
				t = Infertile
			default:
				t = Empty
				res.Unknown++
			}
			l.Set(types.Point{X: x, Y: y}, t)
			x++
		}
	}
	return l, res, nil
}

// Encode writes l as GridHeight lines of GridWidth characters. It does not
// check that a spawn exists.
func Encode(w io.Writer, l *Layout) error {
	bw := bufio.NewWriter(w)
	for y := 0; y < types.GridHeight; y++ {
		for x := 0; x < types.GridWidth; x++ {
			if err := bw.WriteByte(l.Tiles.Get(x, y).char()); err != nil {
				return errors.Wrap(err, "write map")
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return errors.Wrap(err, "write map")
		}
	}
	return errors.Wrap(bw.Flush(), "flush map")
}

func (t Tile) char() byte {
	switch t {
	case Wall:
		return charWall
	case Spawn:
		return charSpawn
	case Infertile:
		return charInfertile
	default:
		return charEmpty
	}
}
