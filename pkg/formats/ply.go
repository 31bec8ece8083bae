// Package formats provides parsers for 3D mesh payload formats.
// PLY (Polygon File Format) parser for generated model payloads.
package formats

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// PLY format errors.
var (
	ErrInvalidPLYMagic      = errors.New("invalid PLY magic: expected 'ply'")
	ErrMalformedPLYHeader   = errors.New("malformed PLY header")
	ErrUnsupportedPLYFormat = errors.New("unsupported PLY format")
	ErrMissingPosition      = errors.New("PLY vertex element missing x/y/z properties")
	ErrTruncatedPLYData     = errors.New("truncated PLY data")
	ErrInvalidPLYCount      = errors.New("invalid PLY element count")
	ErrInvalidPLYIndex      = errors.New("PLY face index out of range")
)

// PLYFormat represents the body encoding declared in the header.
type PLYFormat int

const (
	PLYAscii    PLYFormat = 0 // "format ascii 1.0"
	PLYBinaryLE PLYFormat = 1 // "format binary_little_endian 1.0"
)

// String returns a human-readable format name.
func (f PLYFormat) String() string {
	switch f {
	case PLYAscii:
		return "ascii"
	case PLYBinaryLE:
		return "binary_little_endian"
	default:
		return fmt.Sprintf("Unknown(%d)", int(f))
	}
}

// plyType identifies a scalar property type.
type plyType int

const (
	plyInt8 plyType = iota
	plyUint8
	plyInt16
	plyUint16
	plyInt32
	plyUint32
	plyFloat32
	plyFloat64
)

// plyTypeNames maps header type names (including the legacy aliases) to types.
var plyTypeNames = map[string]plyType{
	"char": plyInt8, "int8": plyInt8,
	"uchar": plyUint8, "uint8": plyUint8,
	"short": plyInt16, "int16": plyInt16,
	"ushort": plyUint16, "uint16": plyUint16,
	"int": plyInt32, "int32": plyInt32,
	"uint": plyUint32, "uint32": plyUint32,
	"float": plyFloat32, "float32": plyFloat32,
	"double": plyFloat64, "float64": plyFloat64,
}

// plyProperty describes one declared property of an element.
type plyProperty struct {
	Name      string
	Type      plyType
	IsList    bool
	CountType plyType // List length type (lists only)
}

// plyElement describes one declared element and its property layout.
type plyElement struct {
	Name       string
	Count      int
	Properties []plyProperty
}

// PLY represents a parsed PLY mesh payload.
// Positions are always present; normals, colors and faces are optional
// (nil when the file does not carry them). Faces are triangulated.
type PLY struct {
	Format    PLYFormat
	Comments  []string
	Positions [][3]float32
	Normals   [][3]float32
	Colors    [][3]uint8
	Faces     [][3]uint32
}

// VertexCount returns the number of vertices.
func (p *PLY) VertexCount() int {
	return len(p.Positions)
}

// FaceCount returns the number of triangles (0 for point clouds).
func (p *PLY) FaceCount() int {
	return len(p.Faces)
}

// HasNormals returns true if per-vertex normals were present in the file.
func (p *PLY) HasNormals() bool {
	return p.Normals != nil
}

// HasColors returns true if per-vertex colors were present in the file.
func (p *PLY) HasColors() bool {
	return p.Colors != nil
}

// ParsePLY parses PLY data from a byte slice.
func ParsePLY(data []byte) (*PLY, error) {
	if len(data) < 4 {
		return nil, ErrTruncatedPLYData
	}

	r := bufio.NewReader(bytes.NewReader(data))

	ply, elements, err := parsePLYHeader(r)
	if err != nil {
		return nil, err
	}

	for _, elem := range elements {
		switch elem.Name {
		case "vertex":
			if err := parsePLYVertices(r, ply, elem); err != nil {
				return nil, err
			}
		case "face":
			if err := parsePLYFaces(r, ply, elem); err != nil {
				return nil, err
			}
		default:
			if err := skipPLYElement(r, ply.Format, elem); err != nil {
				return nil, err
			}
		}
	}

	if ply.Positions == nil {
		return nil, ErrMissingPosition
	}

	return ply, nil
}

// ParsePLYFile parses a PLY file from disk.
func ParsePLYFile(path string) (*PLY, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading PLY file: %w", err)
	}
	return ParsePLY(data)
}

// parsePLYHeader consumes the text header up to and including end_header.
func parsePLYHeader(r *bufio.Reader) (*PLY, []plyElement, error) {
	magic, err := readHeaderLine(r)
	if err != nil {
		return nil, nil, ErrTruncatedPLYData
	}
	if magic != "ply" {
		return nil, nil, ErrInvalidPLYMagic
	}

	ply := &PLY{}
	var elements []plyElement
	formatSeen := false

	for {
		line, err := readHeaderLine(r)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: missing end_header", ErrMalformedPLYHeader)
		}
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "format":
			if len(fields) != 3 {
				return nil, nil, fmt.Errorf("%w: %q", ErrMalformedPLYHeader, line)
			}
			switch fields[1] {
			case "ascii":
				ply.Format = PLYAscii
			case "binary_little_endian":
				ply.Format = PLYBinaryLE
			default:
				return nil, nil, fmt.Errorf("%w: %s", ErrUnsupportedPLYFormat, fields[1])
			}
			formatSeen = true

		case "comment", "obj_info":
			ply.Comments = append(ply.Comments, strings.TrimSpace(strings.TrimPrefix(line, fields[0])))

		case "element":
			if len(fields) != 3 {
				return nil, nil, fmt.Errorf("%w: %q", ErrMalformedPLYHeader, line)
			}
			count, err := strconv.Atoi(fields[2])
			if err != nil || count < 0 || count > 10_000_000 {
				return nil, nil, fmt.Errorf("%w: element %s", ErrInvalidPLYCount, fields[1])
			}
			elements = append(elements, plyElement{Name: fields[1], Count: count})

		case "property":
			if len(elements) == 0 {
				return nil, nil, fmt.Errorf("%w: property before element", ErrMalformedPLYHeader)
			}
			prop, err := parsePLYProperty(fields)
			if err != nil {
				return nil, nil, err
			}
			elem := &elements[len(elements)-1]
			elem.Properties = append(elem.Properties, prop)

		case "end_header":
			if !formatSeen {
				return nil, nil, fmt.Errorf("%w: no format line", ErrMalformedPLYHeader)
			}
			return ply, elements, nil

		default:
			return nil, nil, fmt.Errorf("%w: %q", ErrMalformedPLYHeader, line)
		}
	}
}

// parsePLYProperty parses a "property ..." header line already split on spaces.
func parsePLYProperty(fields []string) (plyProperty, error) {
	if len(fields) >= 2 && fields[1] == "list" {
		// property list <count-type> <index-type> <name>
		if len(fields) != 5 {
			return plyProperty{}, fmt.Errorf("%w: %q", ErrMalformedPLYHeader, strings.Join(fields, " "))
		}
		countType, ok := plyTypeNames[fields[2]]
		if !ok {
			return plyProperty{}, fmt.Errorf("%w: list count type %s", ErrUnsupportedPLYFormat, fields[2])
		}
		elemType, ok := plyTypeNames[fields[3]]
		if !ok {
			return plyProperty{}, fmt.Errorf("%w: list element type %s", ErrUnsupportedPLYFormat, fields[3])
		}
		return plyProperty{Name: fields[4], Type: elemType, IsList: true, CountType: countType}, nil
	}

	// property <type> <name>
	if len(fields) != 3 {
		return plyProperty{}, fmt.Errorf("%w: %q", ErrMalformedPLYHeader, strings.Join(fields, " "))
	}
	typ, ok := plyTypeNames[fields[1]]
	if !ok {
		return plyProperty{}, fmt.Errorf("%w: property type %s", ErrUnsupportedPLYFormat, fields[1])
	}
	return plyProperty{Name: fields[2], Type: typ}, nil
}

// parsePLYVertices reads the vertex element body into the PLY result.
func parsePLYVertices(r *bufio.Reader, ply *PLY, elem plyElement) error {
	// Slot index per property: 0-2 position, 3-5 normal, 6-8 color, -1 skip.
	slots := make([]int, len(elem.Properties))
	hasPos := [3]bool{}
	hasNormal := false
	hasColor := false

	for i, prop := range elem.Properties {
		if prop.IsList {
			return fmt.Errorf("%w: list property %q on vertex element", ErrMalformedPLYHeader, prop.Name)
		}
		switch prop.Name {
		case "x":
			slots[i], hasPos[0] = 0, true
		case "y":
			slots[i], hasPos[1] = 1, true
		case "z":
			slots[i], hasPos[2] = 2, true
		case "nx":
			slots[i] = 3
		case "ny":
			slots[i] = 4
		case "nz":
			slots[i] = 5
		case "red":
			slots[i] = 6
		case "green":
			slots[i] = 7
		case "blue":
			slots[i] = 8
		default:
			slots[i] = -1
		}
		if slots[i] >= 3 && slots[i] < 6 {
			hasNormal = true
		}
		if slots[i] >= 6 {
			hasColor = true
		}
	}

	if !hasPos[0] || !hasPos[1] || !hasPos[2] {
		return ErrMissingPosition
	}

	ply.Positions = make([][3]float32, elem.Count)
	if hasNormal {
		ply.Normals = make([][3]float32, elem.Count)
	}
	if hasColor {
		ply.Colors = make([][3]uint8, elem.Count)
	}

	var tok *asciiTokenizer
	if ply.Format == PLYAscii {
		tok = &asciiTokenizer{r: r}
	}

	for v := 0; v < elem.Count; v++ {
		for i, prop := range elem.Properties {
			val, err := readPLYScalar(r, tok, ply.Format, prop.Type)
			if err != nil {
				return ErrTruncatedPLYData
			}
			switch slot := slots[i]; {
			case slot < 0:
				// Unknown property, skipped.
			case slot < 3:
				ply.Positions[v][slot] = float32(val)
			case slot < 6:
				ply.Normals[v][slot-3] = float32(val)
			default:
				ply.Colors[v][slot-6] = colorByte(val, prop.Type)
			}
		}
	}

	return nil
}

// parsePLYFaces reads the face element body, fan-triangulating polygons.
func parsePLYFaces(r *bufio.Reader, ply *PLY, elem plyElement) error {
	var tok *asciiTokenizer
	if ply.Format == PLYAscii {
		tok = &asciiTokenizer{r: r}
	}

	vertexCount := len(ply.Positions)
	ply.Faces = make([][3]uint32, 0, elem.Count)

	for f := 0; f < elem.Count; f++ {
		for _, prop := range elem.Properties {
			if !prop.IsList {
				// Scalar face property (rare), read and discard.
				if _, err := readPLYScalar(r, tok, ply.Format, prop.Type); err != nil {
					return ErrTruncatedPLYData
				}
				continue
			}
			if prop.Name != "vertex_indices" && prop.Name != "vertex_index" {
				if err := skipPLYList(r, tok, ply.Format, prop); err != nil {
					return err
				}
				continue
			}

			count, err := readPLYScalar(r, tok, ply.Format, prop.CountType)
			if err != nil {
				return ErrTruncatedPLYData
			}
			n := int(count)
			if n < 0 || n > 255 {
				return fmt.Errorf("%w: face with %d vertices", ErrInvalidPLYCount, n)
			}

			indices := make([]uint32, n)
			for i := 0; i < n; i++ {
				val, err := readPLYScalar(r, tok, ply.Format, prop.Type)
				if err != nil {
					return ErrTruncatedPLYData
				}
				idx := int64(val)
				if idx < 0 || idx >= int64(vertexCount) {
					return fmt.Errorf("%w: index %d of %d vertices", ErrInvalidPLYIndex, idx, vertexCount)
				}
				indices[i] = uint32(idx)
			}

			// Fan triangulation; degenerate faces (n < 3) are dropped.
			for i := 2; i < n; i++ {
				ply.Faces = append(ply.Faces, [3]uint32{indices[0], indices[i-1], indices[i]})
			}
		}
	}

	if len(ply.Faces) == 0 {
		ply.Faces = nil
	}
	return nil
}

// skipPLYElement consumes an element this parser does not use.
func skipPLYElement(r *bufio.Reader, format PLYFormat, elem plyElement) error {
	var tok *asciiTokenizer
	if format == PLYAscii {
		tok = &asciiTokenizer{r: r}
	}

	for i := 0; i < elem.Count; i++ {
		for _, prop := range elem.Properties {
			if prop.IsList {
				if err := skipPLYList(r, tok, format, prop); err != nil {
					return err
				}
				continue
			}
			if _, err := readPLYScalar(r, tok, format, prop.Type); err != nil {
				return ErrTruncatedPLYData
			}
		}
	}
	return nil
}

// skipPLYList consumes one list property value.
func skipPLYList(r *bufio.Reader, tok *asciiTokenizer, format PLYFormat, prop plyProperty) error {
	count, err := readPLYScalar(r, tok, format, prop.CountType)
	if err != nil {
		return ErrTruncatedPLYData
	}
	n := int(count)
	if n < 0 || n > 1_000_000 {
		return fmt.Errorf("%w: list of %d", ErrInvalidPLYCount, n)
	}
	for i := 0; i < n; i++ {
		if _, err := readPLYScalar(r, tok, format, prop.Type); err != nil {
			return ErrTruncatedPLYData
		}
	}
	return nil
}

// readPLYScalar reads one scalar in the active body encoding.
func readPLYScalar(r *bufio.Reader, tok *asciiTokenizer, format PLYFormat, t plyType) (float64, error) {
	if format == PLYAscii {
		s, err := tok.next()
		if err != nil {
			return 0, err
		}
		return parseASCIIScalar(s, t)
	}
	return readBinaryScalar(r, t)
}

// readBinaryScalar reads one little-endian scalar of the given type.
func readBinaryScalar(r io.Reader, t plyType) (float64, error) {
	switch t {
	case plyInt8:
		var v int8
		if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
			return 0, err
		}
		return float64(v), nil
	case plyUint8:
		var v uint8
		if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
			return 0, err
		}
		return float64(v), nil
	case plyInt16:
		var v int16
		if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
			return 0, err
		}
		return float64(v), nil
	case plyUint16:
		var v uint16
		if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
			return 0, err
		}
		return float64(v), nil
	case plyInt32:
		var v int32
		if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
			return 0, err
		}
		return float64(v), nil
	case plyUint32:
		var v uint32
		if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
			return 0, err
		}
		return float64(v), nil
	case plyFloat32:
		var v float32
		if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
			return 0, err
		}
		return float64(v), nil
	case plyFloat64:
		var v float64
		if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
			return 0, err
		}
		return v, nil
	default:
		return 0, ErrUnsupportedPLYFormat
	}
}

// parseASCIIScalar converts one whitespace token to a number.
func parseASCIIScalar(s string, t plyType) (float64, error) {
	switch t {
	case plyFloat32, plyFloat64:
		return strconv.ParseFloat(s, 64)
	default:
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			// Some writers emit integer properties as "1.0".
			f, ferr := strconv.ParseFloat(s, 64)
			if ferr != nil {
				return 0, err
			}
			return f, nil
		}
		return float64(v), nil
	}
}

// colorByte converts a parsed color value to a byte. Float color
// properties are treated as normalized [0,1] values.
func colorByte(val float64, t plyType) uint8 {
	if t == plyFloat32 || t == plyFloat64 {
		val *= 255.0
	}
	if val < 0 {
		return 0
	}
	if val > 255 {
		return 255
	}
	return uint8(val)
}

// asciiTokenizer yields whitespace-separated tokens across line breaks.
type asciiTokenizer struct {
	r      *bufio.Reader
	fields []string
	pos    int
}

func (t *asciiTokenizer) next() (string, error) {
	for t.pos >= len(t.fields) {
		line, err := t.r.ReadString('\n')
		if len(line) == 0 && err != nil {
			return "", err
		}
		t.fields = strings.Fields(line)
		t.pos = 0
		if err != nil && len(t.fields) == 0 {
			return "", err
		}
	}
	tok := t.fields[t.pos]
	t.pos++
	return tok, nil
}

// readHeaderLine reads one header line, trimming the trailing newline and
// any carriage return left by CRLF writers.
func readHeaderLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
