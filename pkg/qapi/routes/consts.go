package routes

type Tag string

const (
	TagHealth  Tag = "health"
	TagRenders Tag = "renders"
)

func (t Tag) String() string { return string(t) }

func AllTags() []string {
	return []string{
		TagHealth.String(),
		TagRenders.String(),
	}
}
