package voice

// Builtin returns the registry built from the compiled-in voice table.
func Builtin() *Registry {
	r, err := NewRegistry(builtinVoices)
	if err != nil {
		// The table is a literal; a duplicate here is a programming error.
		panic(err)
	}
	return r
}

var builtinVoices = []Voice{
	{
		ID:          "default",
		Name:        "Kreyòl Default",
		Language:    "ht",
		Gender:      GenderNeutral,
		Age:         "adult",
		Description: "Standard Haitian Creole voice",
	},
	{
		ID:          "marie",
		Name:        "Marie",
		Language:    "ht",
		Gender:      GenderFemale,
		Age:         "adult",
		Description: "Warm female Haitian Creole voice",
	},
	{
		ID:          "jean",
		Name:        "Jean",
		Language:    "ht",
		Gender:      GenderMale,
		Age:         "adult",
		Description: "Deep male Haitian Creole voice",
	},
	{
		ID:          "default",
		Name:        "English Default",
		Language:    "en",
		Gender:      GenderNeutral,
		Age:         "adult",
		Description: "Standard English voice",
	},
	{
		ID:          "sarah",
		Name:        "Sarah",
		Language:    "en",
		Gender:      GenderFemale,
		Age:         "adult",
		Description: "Clear female English voice",
	},
	{
		ID:          "michael",
		Name:        "Michael",
		Language:    "en",
		Gender:      GenderMale,
		Age:         "adult",
		Description: "Neutral male English voice",
	},
	{
		ID:          "default",
		Name:        "Français Default",
		Language:    "fr",
		Gender:      GenderNeutral,
		Age:         "adult",
		Description: "Standard French voice",
	},
	{
		ID:          "claire",
		Name:        "Claire",
		Language:    "fr",
		Gender:      GenderFemale,
		Age:         "adult",
		Description: "Soft female French voice",
	},
	{
		ID:          "pierre",
		Name:        "Pierre",
		Language:    "fr",
		Gender:      GenderMale,
		Age:         "adult",
		Description: "Formal male French voice",
	},
}
