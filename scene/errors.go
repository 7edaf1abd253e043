package scene

import "errors"

var (
	// ErrInvalidContainer is returned when a renderer is built against
	// a container which cannot host its surface.
	ErrInvalidContainer = errors.New("container can't host a drawing surface")

	// ErrUnknownFormat is returned when decoding a scene file whose
	// extension is not supported.
	ErrUnknownFormat = errors.New("unknown scene file format")
)
