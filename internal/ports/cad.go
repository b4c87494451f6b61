package ports

import "titleblock/internal/domain"

// CADConnector reaches a running CAD application
type CADConnector interface {
	// Connect attaches to the running application, starting one if needed
	Connect() (CADApplication, error)
}

// CADApplication is one handle to the CAD application.
// Handles are not safe for concurrent use.
type CADApplication interface {
	// Open opens path, or returns it when it is already open
	Open(path string) (Document, error)
	// ActiveDocument returns the document that currently has focus
	ActiveDocument() (Document, error)
	// Activate gives doc the application focus
	Activate(doc Document) error
	// Release drops the handle without closing the application
	Release()
}

// Document is an open drawing
type Document interface {
	Path() string
	Layouts() ([]Layout, error)
	ActiveLayout() (Layout, error)
	SetActiveLayout(layout Layout) error
	// SendCommand queues a command line string; it does not wait for it
	SendCommand(command string) error
	Save() error
	Close() error
}

// Layout is a named sheet of a document
type Layout interface {
	Name() (string, error)
	// PlotStyle returns the plot style table assigned to the layout
	PlotStyle() (string, error)
	// BlockReferences returns the block references placed on the layout
	BlockReferences() ([]BlockReference, error)
}

// BlockReference is one placed block instance
type BlockReference interface {
	Name() (string, error)
	HasAttributes() (bool, error)
	Attributes() ([]Attribute, error)
}

// Attribute is a tagged text field of a block reference. Tag, value and
// position are read when the attribute list is fetched.
type Attribute interface {
	Tag() string
	Value() string
	Position() domain.Point
	// SetValue writes value and refreshes the attribute
	SetValue(value string) error
}
