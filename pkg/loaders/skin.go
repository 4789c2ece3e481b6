package loaders

import (
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/df07/go-skin-raytracer/pkg/scene"
)

// SkinFormat identifies the texture layout of a character skin
type SkinFormat int

const (
	SkinFormat64x64 SkinFormat = iota // Separate left limbs and overlays for every part
	SkinFormat64x32                   // Legacy layout: head overlay only, left limbs mirror the right
)

func (f SkinFormat) String() string {
	if f == SkinFormat64x32 {
		return "64x32"
	}
	return "64x64"
}

// Skin is a parsed character skin: inner and overlay textures for each body part
type Skin struct {
	Format SkinFormat
	Parts  map[string]scene.PartLayers // Keyed by scene.Part name
}

// skinBox locates a part's unwrapped box in the skin image.
// outerX < 0 means the layout has no overlay for the part.
type skinBox struct {
	part           string
	innerX, innerY int
	outerX, outerY int
	w, h, d        int
}

var skinLayout64x64 = []skinBox{
	{"head", 0, 0, 32, 0, 8, 8, 8},
	{"body", 16, 16, 16, 32, 8, 12, 4},
	{"right_arm", 40, 16, 40, 32, 4, 12, 4},
	{"left_arm", 32, 48, 48, 48, 4, 12, 4},
	{"right_leg", 0, 16, 0, 32, 4, 12, 4},
	{"left_leg", 16, 48, 0, 48, 4, 12, 4},
}

var skinLayout64x32 = []skinBox{
	{"head", 0, 0, 32, 0, 8, 8, 8},
	{"body", 16, 16, -1, -1, 8, 12, 4},
	{"right_arm", 40, 16, -1, -1, 4, 12, 4},
	{"right_leg", 0, 16, -1, -1, 4, 12, 4},
}

// LoadSkin reads and parses a skin PNG
func LoadSkin(filename string) (*Skin, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open skin %s", filename)
	}
	defer file.Close()

	skin, err := DecodeSkin(file)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load skin %s", filename)
	}
	return skin, nil
}

// DecodeSkin decodes an image stream and parses it as a skin
func DecodeSkin(r io.Reader) (*Skin, error) {
	tex, err := DecodeTexture(r)
	if err != nil {
		return nil, err
	}
	return ParseSkin(tex)
}

// ParseSkin splits a 64x64 or 64x32 skin texture into per-face part textures.
//
// Each part is an unwrapped box of width w, height h and depth d whose top-left
// corner is (x, y):
//
//	row y:     top (w×d) at x+d, bottom (w×d) at x+d+w
//	row y+d:   right (d×h) at x, front (w×h) at x+d, left (d×h) at x+d+w, back (w×h) at x+2d+w
func ParseSkin(tex scene.TextureRegion) (*Skin, error) {
	var skin Skin
	var layout []skinBox

	switch {
	case tex.Width == 64 && tex.Height == 64:
		skin.Format, layout = SkinFormat64x64, skinLayout64x64
	case tex.Width == 64 && tex.Height == 32:
		skin.Format, layout = SkinFormat64x32, skinLayout64x32
	default:
		return nil, errors.Errorf("invalid skin dimensions %dx%d (expected 64x64 or 64x32)", tex.Width, tex.Height)
	}

	skin.Parts = make(map[string]scene.PartLayers, len(scene.CharacterParts()))
	for _, box := range layout {
		var layers scene.PartLayers
		var err error

		if layers.Inner, err = extractBox(tex, box.innerX, box.innerY, box.w, box.h, box.d); err != nil {
			return nil, errors.Wrapf(err, "%s inner layer", box.part)
		}
		if box.outerX >= 0 {
			if layers.Outer, err = extractBox(tex, box.outerX, box.outerY, box.w, box.h, box.d); err != nil {
				return nil, errors.Wrapf(err, "%s outer layer", box.part)
			}
		}
		skin.Parts[box.part] = layers
	}

	if skin.Format == SkinFormat64x32 {
		skin.Parts["left_arm"] = scene.PartLayers{Inner: mirrorBox(skin.Parts["right_arm"].Inner)}
		skin.Parts["left_leg"] = scene.PartLayers{Inner: mirrorBox(skin.Parts["right_leg"].Inner)}
	}

	return &skin, nil
}

// Scene builds the character scene textured with this skin
func (s *Skin) Scene() *scene.Scene {
	return scene.NewCharacterScene(s.Parts)
}

func extractBox(tex scene.TextureRegion, x, y, w, h, d int) ([scene.FaceCount]scene.TextureRegion, error) {
	regions := [scene.FaceCount]struct{ x, y, w, h int }{
		scene.FaceFront:  {x + d, y + d, w, h},
		scene.FaceBack:   {x + 2*d + w, y + d, w, h},
		scene.FaceLeft:   {x + d + w, y + d, d, h},
		scene.FaceRight:  {x, y + d, d, h},
		scene.FaceTop:    {x + d, y, w, d},
		scene.FaceBottom: {x + d + w, y, w, d},
	}

	var faces [scene.FaceCount]scene.TextureRegion
	for face, r := range regions {
		region, err := ExtractRegion(tex, r.x, r.y, r.w, r.h)
		if err != nil {
			return faces, errors.Wrapf(err, "%s face", scene.Face(face))
		}
		faces[face] = region
	}
	return faces, nil
}

// mirrorBox reflects a part across its vertical centre plane: every face is
// flipped horizontally and the left and right faces trade places.
func mirrorBox(faces [scene.FaceCount]scene.TextureRegion) [scene.FaceCount]scene.TextureRegion {
	var mirrored [scene.FaceCount]scene.TextureRegion
	for i := range faces {
		mirrored[i] = MirrorHorizontal(faces[i])
	}
	mirrored[scene.FaceLeft], mirrored[scene.FaceRight] = mirrored[scene.FaceRight], mirrored[scene.FaceLeft]
	return mirrored
}

// MirrorHorizontal returns a copy of the region flipped left to right
func MirrorHorizontal(src scene.TextureRegion) scene.TextureRegion {
	if src.Empty() {
		return scene.TextureRegion{}
	}

	dst := scene.NewTextureRegion(src.Width, src.Height)
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			dst.Pixels[y*src.Width+x] = src.Pixels[y*src.Width+(src.Width-1-x)]
		}
	}
	return dst
}
