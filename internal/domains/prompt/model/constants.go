package model

const (
	// Version defaults
	FirstVersionNumber        = 1
	DefaultVersionDescription = "Initial version."

	// Rating
	MinScore         = 1.0
	MaxScore         = 5.0
	RatingPrecision  = 1 // decimal places kept on the average
	RatingUserPrefix = "user-"

	// Content limits
	MaxTitleLength  = 200
	MaxAuthorLength = 100
	MaxTagLength    = 50
	MaxTags         = 20
)
