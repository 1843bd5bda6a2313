package method

// Method is the related-content recommendation strategy.
type Method string

// Recommendation method constants.
const (
	Tags     Method = "tags"
	Category Method = "category"
	Keywords Method = "keywords"
	// Mixed blends tag, category and keyword signals with additive weights.
	Mixed Method = "mixed"
)

// IsValid checks if the method is one of the supported values.
func (m Method) IsValid() bool {
	return m == Tags || m == Category || m == Keywords || m == Mixed
}

// OrDefault returns Mixed for the empty method.
func (m Method) OrDefault() Method {
	if m == "" {
		return Mixed
	}
	return m
}
