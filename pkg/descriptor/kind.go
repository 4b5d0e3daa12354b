package descriptor

// Kind is the structural role of a descriptor.
type Kind string

const (
	KindScalar Kind = "scalar"
	KindList   Kind = "list"
	KindObject Kind = "object"
	KindArray  Kind = "array"
	KindEnd    Kind = "end"
)

// IsContainer reports whether descriptors of this kind own children.
func (k Kind) IsContainer() bool {
	return k == KindObject || k == KindArray
}

// Widget selects the editor used for a scalar descriptor.
type Widget string

const (
	WidgetText     Widget = "text"
	WidgetTextarea Widget = "textarea"
	WidgetCheckbox Widget = "checkbox"
	WidgetMarkdown Widget = "markdown"
)

// Valid reports whether w is one of the known scalar widgets.
func (w Widget) Valid() bool {
	switch w {
	case WidgetText, WidgetTextarea, WidgetCheckbox, WidgetMarkdown:
		return true
	default:
		return false
	}
}

// Component names the palette entries an author can drag onto the canvas.
type Component string

const (
	ComponentText     Component = "text"
	ComponentTextarea Component = "textarea"
	ComponentMarkdown Component = "markdown editor"
	ComponentCheckbox Component = "checkbox"
	ComponentList     Component = "simple list"
	ComponentObject   Component = "object"
	ComponentArray    Component = "array"
)

// Palette lists the draggable components in display order.
func Palette() []Component {
	return []Component{
		ComponentText,
		ComponentTextarea,
		ComponentMarkdown,
		ComponentCheckbox,
		ComponentList,
		ComponentObject,
		ComponentArray,
	}
}
