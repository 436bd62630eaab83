package datafix

// Shape identifies which of the six primitive forms a representation node has.
type Shape uint8

const (
	ShapeNumber Shape = iota
	ShapeString
	ShapeBoolean
	ShapeList
	ShapeMap
	ShapeUnit
)

var shapeNames = [...]string{
	ShapeNumber:  "number",
	ShapeString:  "string",
	ShapeBoolean: "boolean",
	ShapeList:    "list",
	ShapeMap:     "map",
	ShapeUnit:    "unit",
}

func (s Shape) String() string {
	if int(s) < len(shapeNames) {
		return shapeNames[s]
	}
	return "unknown"
}
