package hal

// ObjectType identifies a hardware object category.
type ObjectType int

// Hardware object categories.
const (
	ObjectTypeNone ObjectType = iota
	ObjectTypeSwitch
	ObjectTypePort
	ObjectTypeBridge
	ObjectTypeBridgePort
	ObjectTypeVlan
	ObjectTypeQueue
	ObjectTypeRouterInterface
	ObjectTypeNextHop
	ObjectTypeRoute
	ObjectTypeNeighbor
	ObjectTypeFdb
)

// objectTypeNames maps object categories to their canonical names.
var objectTypeNames = [...]string{
	ObjectTypeNone:            "none",
	ObjectTypeSwitch:          "switch",
	ObjectTypePort:            "port",
	ObjectTypeBridge:          "bridge",
	ObjectTypeBridgePort:      "bridge-port",
	ObjectTypeVlan:            "vlan",
	ObjectTypeQueue:           "queue",
	ObjectTypeRouterInterface: "router-interface",
	ObjectTypeNextHop:         "next-hop",
	ObjectTypeRoute:           "route",
	ObjectTypeNeighbor:        "neighbor",
	ObjectTypeFdb:             "fdb",
}

// String returns the category name.
func (t ObjectType) String() string {
	if t >= 0 && int(t) < len(objectTypeNames) {
		return objectTypeNames[t]
	}
	return "unknown"
}
