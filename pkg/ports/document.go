package ports

// Orientation is the page orientation of a document export.
type Orientation string

const (
	OrientationPortrait  Orientation = "portrait"
	OrientationLandscape Orientation = "landscape"
)

// OrientationFor returns landscape when width exceeds height, otherwise portrait.
func OrientationFor(width, height int) Orientation {
	if width > height {
		return OrientationLandscape
	}
	return OrientationPortrait
}

// DocumentWriter assembles paginated documents.
type DocumentWriter interface {
	// SinglePage wraps a PNG image, unscaled, as the only page of a document
	// whose page size equals width x height.
	SinglePage(png []byte, width, height int, orientation Orientation) ([]byte, error)
}
