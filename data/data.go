package data

// DefaultProperties holds the built-in value of every simulation key.
// A configuration source only needs to name the keys it changes.
var DefaultProperties = map[string]string{
	"structures":       "linked",
	"floors":           "32",
	"passengers":       "0.03",
	"elevators":        "1",
	"elevatorCapacity": "10",
	"duration":         "500",
}

// Keys lists the property names in documentation order.
var Keys = []string{"structures", "floors", "passengers", "elevators", "elevatorCapacity", "duration"}
