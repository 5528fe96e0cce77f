package content

// NameField is the match-list target for a container's name.
const NameField = "mName"

// Container groups contents and nested containers under a name, such as a
// category of a video feed.
type Container struct {
	Name       string                 `json:"name"`
	Contents   []*Content             `json:"contents,omitempty"`
	Containers []*Container           `json:"containers,omitempty"`
	Extras     map[string]interface{} `json:"extras,omitempty"`
}

// NewContainer creates an empty container.
func NewContainer() *Container {
	return &Container{}
}

// AddContent appends c unless it is nil.
func (cc *Container) AddContent(c *Content) {
	if c != nil {
		cc.Contents = append(cc.Contents, c)
	}
}

// AddContainer appends a child container unless it is nil.
func (cc *Container) AddContainer(child *Container) {
	if child != nil {
		cc.Containers = append(cc.Containers, child)
	}
}

// FindContainer returns the direct child container with the given name.
func (cc *Container) FindContainer(name string) *Container {
	for _, child := range cc.Containers {
		if child.Name == name {
			return child
		}
	}
	return nil
}

// Size is the number of contents and child containers.
func (cc *Container) Size() int {
	return len(cc.Contents) + len(cc.Containers)
}

func (cc *Container) SetExtraValue(key string, value interface{}) {
	if cc.Extras == nil {
		cc.Extras = make(map[string]interface{})
	}
	cc.Extras[key] = value
}

func (cc *Container) ExtraValue(key string) interface{} {
	if cc.Extras == nil {
		return nil
	}
	return cc.Extras[key]
}
