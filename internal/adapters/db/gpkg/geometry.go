package gpkg

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/CHRISCARLON/uk-future-works-model/internal/domain"
)

// GeoPackage geometry blobs are an 8-byte "GP" header, an optional envelope,
// then standard WKB. Everything this profile writes is a little-endian 2-D
// linestring with an XY envelope.

const (
	gpMagic1 = 0x47 // 'G'
	gpMagic2 = 0x50 // 'P'

	// flags: bit0 byte order (1 = little endian), bits1-3 envelope indicator
	// (1 = [minx, maxx, miny, maxy]).
	gpFlagsLEWithEnvelope = 0x03

	wkbLineString = 2
)

var errNotGeoPackageBlob = errors.New("gpkg: not a geopackage geometry blob")

// EncodeLineString serialises a line geometry into a GeoPackage binary blob.
func EncodeLineString(line domain.LineString) ([]byte, error) {
	if !line.IsValid() {
		return nil, fmt.Errorf("gpkg: linestring needs at least 2 points, got %d", len(line.Points))
	}

	buf := make([]byte, 0, 8+32+9+16*len(line.Points))
	buf = append(buf, gpMagic1, gpMagic2, 0, gpFlagsLEWithEnvelope)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(line.SRSID))

	minX, maxX, minY, maxY := line.Envelope()
	for _, v := range []float64{minX, maxX, minY, maxY} {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v))
	}

	buf = append(buf, 1) // WKB little endian
	buf = binary.LittleEndian.AppendUint32(buf, wkbLineString)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(line.Points)))
	for _, p := range line.Points {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(p.X))
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(p.Y))
	}
	return buf, nil
}

// DecodeLineString parses a GeoPackage binary blob back into a line geometry.
// Envelopes of any of the four standard sizes are skipped; big-endian WKB is
// accepted on read even though the writer always emits little-endian.
func DecodeLineString(blob []byte) (domain.LineString, error) {
	if len(blob) < 8 || blob[0] != gpMagic1 || blob[1] != gpMagic2 {
		return domain.LineString{}, errNotGeoPackageBlob
	}

	flags := blob[3]
	if flags&0x20 != 0 {
		return domain.LineString{}, errors.New("gpkg: extended geometry blobs not supported")
	}

	var srsID int32
	if flags&0x01 == 1 {
		srsID = int32(binary.LittleEndian.Uint32(blob[4:8]))
	} else {
		srsID = int32(binary.BigEndian.Uint32(blob[4:8]))
	}

	envelopeSizes := [...]int{0, 32, 48, 48, 64}
	indicator := int(flags >> 1 & 0x07)
	if indicator >= len(envelopeSizes) {
		return domain.LineString{}, fmt.Errorf("gpkg: invalid envelope indicator %d", indicator)
	}

	wkb := blob[8+envelopeSizes[indicator]:]
	if len(wkb) < 9 {
		return domain.LineString{}, errNotGeoPackageBlob
	}

	var order binary.ByteOrder = binary.BigEndian
	if wkb[0] == 1 {
		order = binary.LittleEndian
	}
	if geomType := order.Uint32(wkb[1:5]); geomType != wkbLineString {
		return domain.LineString{}, fmt.Errorf("gpkg: expected linestring, got wkb type %d", geomType)
	}

	n := int(order.Uint32(wkb[5:9]))
	if len(wkb) < 9+16*n {
		return domain.LineString{}, fmt.Errorf("gpkg: truncated linestring, want %d points", n)
	}

	points := make([]domain.Coordinate, 0, n)
	for i := 0; i < n; i++ {
		off := 9 + 16*i
		points = append(points, domain.Coordinate{
			X: math.Float64frombits(order.Uint64(wkb[off : off+8])),
			Y: math.Float64frombits(order.Uint64(wkb[off+8 : off+16])),
		})
	}
	return domain.LineString{SRSID: srsID, Points: points}, nil
}
