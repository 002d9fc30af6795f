package hal

// Attribute identifiers, grouped by object category. IDs are scoped to
// their category; the numeric values only need to be stable per category.

// Switch attributes.
const (
	SwitchAttrInitSwitch AttrID = iota + 1
	SwitchAttrSrcMAC
	SwitchAttrPortList
	SwitchAttrDefaultVrID
)

// Port attributes.
const (
	PortAttrHwLaneList AttrID = iota + 1
	PortAttrSpeed
	PortAttrAdminState
	PortAttrMTU
	PortAttrQueueList
	PortAttrFec
)

// Bridge attributes.
const (
	BridgeAttrType AttrID = iota + 1
	BridgeAttrPortList
	BridgeAttrMaxLearnedAddresses
)

// Bridge port attributes.
const (
	BridgePortAttrType AttrID = iota + 1
	BridgePortAttrPortID
	BridgePortAttrBridgeID
	BridgePortAttrAdminState
)

// VLAN attributes.
const (
	VlanAttrVlanID AttrID = iota + 1
	VlanAttrMemberList
)

// Queue attributes.
const (
	QueueAttrType AttrID = iota + 1
	QueueAttrPortID
	QueueAttrIndex
	QueueAttrWredProfileID
)

// Router interface attributes.
const (
	RouterInterfaceAttrVrID AttrID = iota + 1
	RouterInterfaceAttrType
	RouterInterfaceAttrPortID
	RouterInterfaceAttrSrcMAC
)

// Next hop attributes.
const (
	NextHopAttrType AttrID = iota + 1
	NextHopAttrIP
	NextHopAttrInterfaceID
)

// Route attributes.
const (
	RouteAttrPacketAction AttrID = iota + 1
	RouteAttrNextHopID
)

// Neighbor attributes.
const (
	NeighborAttrDstMAC AttrID = iota + 1
	NeighborAttrNoHostRoute
)

// FDB attributes.
const (
	FdbAttrType AttrID = iota + 1
	FdbAttrBridgePortID
	FdbAttrPacketAction
)

// Bridge types.
const (
	BridgeType1Q int32 = iota
	BridgeType1D
)

// Packet actions.
const (
	PacketActionDrop int32 = iota
	PacketActionForward
	PacketActionTrap
)

// Port counter identifiers.
const (
	PortStatIfInOctets CounterID = iota + 1
	PortStatIfInUcastPkts
	PortStatIfInErrors
	PortStatIfOutOctets
	PortStatIfOutUcastPkts
	PortStatIfOutErrors
)

// Queue counter identifiers.
const (
	QueueStatPackets CounterID = iota + 1
	QueueStatBytes
	QueueStatDroppedPackets
	QueueStatWatermarkBytes
)
