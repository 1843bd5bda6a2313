package content

// Category is the content section an item belongs to.
type Category string

// Content category constants.
const (
	Tech        Category = "tech"
	Observation Category = "observation"
	Life        Category = "life"
	Creative    Category = "creative"
	Code        Category = "code"
)

// Categories lists every content category in display order.
func Categories() []Category {
	return []Category{Tech, Observation, Life, Creative, Code}
}

// IsValid checks if the category is one of the supported values.
func (c Category) IsValid() bool {
	switch c {
	case Tech, Observation, Life, Creative, Code:
		return true
	}
	return false
}

// TagCategory groups tags for the tag cloud.
type TagCategory string

// Tag category constants.
const (
	TagTech     TagCategory = "tech"
	TagCreative TagCategory = "creative"
	TagLife     TagCategory = "life"
	TagIndustry TagCategory = "industry"
	TagGeneral  TagCategory = "general"
)

// IsValid checks if the tag category is one of the supported values.
func (c TagCategory) IsValid() bool {
	switch c {
	case TagTech, TagCreative, TagLife, TagIndustry, TagGeneral:
		return true
	}
	return false
}

// TagCategoryFor returns the tag category a new tag inherits from the content
// category that first uses it.
func TagCategoryFor(c Category) TagCategory {
	switch c {
	case Tech, Code:
		return TagTech
	case Observation:
		return TagIndustry
	case Life:
		return TagLife
	case Creative:
		return TagCreative
	default:
		return TagGeneral
	}
}
