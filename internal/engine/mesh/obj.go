package mesh

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// ErrMalformed is wrapped by every OBJ parse failure.
var ErrMalformed = errors.New("malformed OBJ data")

// SyntaxError reports a parse failure at a specific line.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: line %d: %s", ErrMalformed, e.Line, e.Msg)
}

// Unwrap lets callers match ErrMalformed with errors.Is.
func (e *SyntaxError) Unwrap() error {
	return ErrMalformed
}

// objReader accumulates OBJ attribute pools and emits one vertex per face corner.
type objReader struct {
	log       *zap.Logger
	positions [][3]float32
	texcoords [][2]float32
	normals   [][3]float32
	mesh      *Mesh
	line      int
}

// LoadOBJ reads and parses an OBJ file. A missing file yields an error wrapping fs.ErrNotExist.
func LoadOBJ(path string, log *zap.Logger) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening mesh: %w", err)
	}
	defer f.Close()

	m, err := ParseOBJ(f, log)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	m.Name = filepath.Base(path)
	return m, nil
}

// ParseOBJ parses Wavefront OBJ text into a single mesh.
// Supported records are v, vt, vn and f; comments and mtllib are logged at debug
// level and everything else is ignored. Faces with more than three corners are
// triangulated as a fan.
func ParseOBJ(r io.Reader, log *zap.Logger) (*Mesh, error) {
	if log == nil {
		log = zap.NewNop()
	}
	p := &objReader{log: log, mesh: &Mesh{Name: "obj"}}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		p.line++
		if err := p.parseLine(sc.Text()); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading OBJ: %w", err)
	}
	if len(p.mesh.Indices) == 0 {
		return nil, fmt.Errorf("%w: no faces", ErrMalformed)
	}

	log.Debug("parsed OBJ mesh",
		zap.Int("lines", p.line),
		zap.Int("positions", len(p.positions)),
		zap.Int("vertices", len(p.mesh.Vertices)),
		zap.Int("triangles", p.mesh.TriangleCount()))
	return p.mesh, nil
}

func (p *objReader) parseLine(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if strings.HasPrefix(text, "#") {
		p.log.Debug("OBJ comment", zap.Int("line", p.line), zap.String("text", strings.TrimSpace(text[1:])))
		return nil
	}

	fields := strings.Fields(text)
	args := fields[1:]
	switch fields[0] {
	case "mtllib":
		p.log.Debug("OBJ material library", zap.Int("line", p.line), zap.Strings("files", args))
	case "v":
		v, err := p.floats(args, 3)
		if err != nil {
			return err
		}
		p.positions = append(p.positions, [3]float32{v[0], v[1], v[2]})
	case "vt":
		v, err := p.floats(args, 2)
		if err != nil {
			return err
		}
		p.texcoords = append(p.texcoords, [2]float32{v[0], v[1]})
	case "vn":
		v, err := p.floats(args, 3)
		if err != nil {
			return err
		}
		p.normals = append(p.normals, [3]float32{v[0], v[1], v[2]})
	case "f":
		return p.face(args)
	}
	return nil
}

// floats parses the first n tokens. Extra tokens (such as a w component) are ignored.
func (p *objReader) floats(args []string, n int) ([]float32, error) {
	if len(args) < n {
		return nil, p.errorf("expected %d values, got %d", n, len(args))
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		f, err := strconv.ParseFloat(args[i], 32)
		if err != nil {
			return nil, p.errorf("invalid number %q", args[i])
		}
		out[i] = float32(f)
	}
	return out, nil
}

func (p *objReader) face(corners []string) error {
	if len(corners) < 3 {
		return p.errorf("face needs at least 3 corners, got %d", len(corners))
	}

	base := uint32(len(p.mesh.Vertices))
	for _, c := range corners {
		v, err := p.corner(c)
		if err != nil {
			return err
		}
		p.mesh.Vertices = append(p.mesh.Vertices, v)
	}
	for k := 1; k+1 < len(corners); k++ {
		p.mesh.Indices = append(p.mesh.Indices, base, base+uint32(k), base+uint32(k)+1)
	}
	return nil
}

// corner resolves one face corner of the form p, p/t, p//n or p/t/n.
func (p *objReader) corner(tok string) (Vertex, error) {
	parts := strings.Split(tok, "/")
	if len(parts) > 3 {
		return Vertex{}, p.errorf("invalid face corner %q", tok)
	}

	var v Vertex
	i, err := p.index(parts[0], len(p.positions), "position")
	if err != nil {
		return Vertex{}, err
	}
	v.Position = p.positions[i]

	if len(parts) > 1 && parts[1] != "" {
		i, err := p.index(parts[1], len(p.texcoords), "texcoord")
		if err != nil {
			return Vertex{}, err
		}
		v.TexCoord = p.texcoords[i]
	}
	if len(parts) > 2 && parts[2] != "" {
		i, err := p.index(parts[2], len(p.normals), "normal")
		if err != nil {
			return Vertex{}, err
		}
		v.Normal = p.normals[i]
	}
	return v, nil
}

// index converts a 1-based or negative (relative) OBJ index into a slice index.
func (p *objReader) index(tok string, count int, what string) (int, error) {
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, p.errorf("invalid %s index %q", what, tok)
	}
	switch {
	case n > 0 && n <= count:
		return n - 1, nil
	case n < 0 && count+n >= 0:
		return count + n, nil
	}
	return 0, p.errorf("%s index %d out of range (%d defined)", what, n, count)
}

func (p *objReader) errorf(format string, args ...any) error {
	return &SyntaxError{Line: p.line, Msg: fmt.Sprintf(format, args...)}
}
