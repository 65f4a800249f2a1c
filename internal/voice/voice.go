package voice

// Gender categorizes a voice.
type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderNeutral Gender = "neutral"
)

// Voice describes a synthesis voice available to callers.
// Identity is the (Language, ID) pair.
type Voice struct {
	ID          string `json:"id"          yaml:"id"`
	Name        string `json:"name"        yaml:"name"`
	Language    string `json:"language"    yaml:"language"`
	Gender      Gender `json:"gender"      yaml:"gender"`
	Age         string `json:"age"         yaml:"age"`
	Description string `json:"description" yaml:"description"`
}
