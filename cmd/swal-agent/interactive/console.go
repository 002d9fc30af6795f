// Package interactive provides the interactive console for swal-agent.
package interactive

import (
	"fmt"
	"io"
	"net/netip"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/swal-project/swal-go/pkg/hal"
	"github.com/swal-project/swal-go/pkg/manager"
)

// Console drives the manager table from a readline prompt.
type Console struct {
	table    *manager.Table
	switches *manager.SwitchManager
	rl       *readline.Instance
}

// New creates a console over the given manager table.
func New(table *manager.Table, switches *manager.SwitchManager) (*Console, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "swal> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	return &Console{table: table, switches: switches, rl: rl}, nil
}

// Run reads and executes commands until exit or EOF.
func (c *Console) Run() {
	defer c.rl.Close()
	c.printHelp()

	for {
		line, err := c.rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return
		}
		if err != nil {
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "help", "?":
			c.printHelp()
		case "port":
			c.cmdPort(args)
		case "ports":
			c.cmdPorts()
		case "vlan":
			c.cmdVlan(args)
		case "vlans":
			c.cmdVlans()
		case "bridge":
			c.cmdBridge(args)
		case "route":
			c.cmdRoute(args)
		case "routes":
			c.cmdRoutes()
		case "switch":
			c.cmdSwitch()
		case "exit", "quit", "q":
			return
		default:
			fmt.Printf("unknown command %q, try 'help'\n", cmd)
		}
	}
}

func (c *Console) printHelp() {
	fmt.Print(`Commands:
  port create <lane>[,lane...] <speed-mbps>   create a port
  port rm <oid>                               remove a port
  port admin <oid> up|down                    set admin state
  port reload <oid>                           re-read port state from hardware
  port stats <oid>                            read port counters
  ports                                       list port handles
  vlan create <id>                            create a VLAN
  vlan rm <id>                                remove a VLAN
  vlans                                       list VLAN ids
  bridge create [1q|1d]                       create a bridge
  route add <switch-oid> <vr-oid> <prefix> <nhop-oid>
  route rm <switch-oid> <vr-oid> <prefix>
  routes                                      list route entries
  switch                                      show the switch port list
  help                                        show this help
  exit                                        quit
`)
}

func (c *Console) cmdPort(args []string) {
	if len(args) == 0 {
		fmt.Println("usage: port create|rm|admin|reload|stats ...")
		return
	}
	switch args[0] {
	case "create":
		if len(args) != 3 {
			fmt.Println("usage: port create <lane>[,lane...] <speed-mbps>")
			return
		}
		lanes, err := parseLanes(args[1])
		if err != nil {
			fmt.Println(err)
			return
		}
		speed, err := strconv.ParseUint(args[2], 10, 32)
		if err != nil {
			fmt.Printf("bad speed %q\n", args[2])
			return
		}
		id, err := c.table.Ports().Create(manager.PortConfig{Lanes: lanes, Speed: uint32(speed), AdminUp: true})
		if err != nil {
			fmt.Println(err)
			return
		}
		fmt.Printf("created %s\n", id)

	case "rm":
		id, ok := parseOID(args[1:])
		if !ok {
			return
		}
		if err := c.table.Ports().Remove(id); err != nil {
			fmt.Println(err)
			return
		}
		fmt.Println("removed")

	case "admin":
		if len(args) != 3 {
			fmt.Println("usage: port admin <oid> up|down")
			return
		}
		id, ok := parseOID(args[1:2])
		if !ok {
			return
		}
		if err := c.table.Ports().SetAdminState(id, args[2] == "up"); err != nil {
			fmt.Println(err)
			return
		}
		fmt.Println("ok")

	case "reload":
		id, ok := parseOID(args[1:])
		if !ok {
			return
		}
		state, err := c.table.Ports().Reload(id)
		if err != nil {
			fmt.Println(err)
			return
		}
		fmt.Printf("lanes=%v speed=%d mtu=%d admin_up=%t queues=%d\n",
			state.Lanes, state.Speed, state.MTU, state.AdminUp, len(state.Queues))

	case "stats":
		id, ok := parseOID(args[1:])
		if !ok {
			return
		}
		values, err := c.table.Ports().Stats(id)
		if err != nil {
			fmt.Println(err)
			return
		}
		labels := []string{"in-octets", "in-ucast", "in-errors", "out-octets", "out-ucast", "out-errors"}
		for i, v := range values {
			fmt.Printf("  %-12s %d\n", labels[i], v)
		}

	default:
		fmt.Printf("unknown port subcommand %q\n", args[0])
	}
}

func (c *Console) cmdPorts() {
	for _, id := range c.table.Ports().Handles() {
		fmt.Println(" ", id)
	}
}

func (c *Console) cmdVlan(args []string) {
	if len(args) != 2 {
		fmt.Println("usage: vlan create|rm <id>")
		return
	}
	vlanID, err := strconv.ParseUint(args[1], 10, 16)
	if err != nil {
		fmt.Printf("bad vlan id %q\n", args[1])
		return
	}
	switch args[0] {
	case "create":
		id, err := c.table.Vlans().Create(uint16(vlanID))
		if err != nil {
			fmt.Println(err)
			return
		}
		fmt.Printf("created %s\n", id)
	case "rm":
		if err := c.table.Vlans().Remove(uint16(vlanID)); err != nil {
			fmt.Println(err)
			return
		}
		fmt.Println("removed")
	default:
		fmt.Printf("unknown vlan subcommand %q\n", args[0])
	}
}

func (c *Console) cmdVlans() {
	for _, vlanID := range c.table.Vlans().VlanIDs() {
		oid, _ := c.table.Vlans().Lookup(vlanID)
		fmt.Printf("  vlan %-4d %s\n", vlanID, oid)
	}
}

func (c *Console) cmdBridge(args []string) {
	if len(args) == 0 || args[0] != "create" {
		fmt.Println("usage: bridge create [1q|1d]")
		return
	}
	bridgeType := hal.BridgeType1Q
	if len(args) > 1 && args[1] == "1d" {
		bridgeType = hal.BridgeType1D
	}
	id, err := c.table.Bridges().Create(bridgeType)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("created %s\n", id)
}

func (c *Console) cmdRoute(args []string) {
	if len(args) < 4 {
		fmt.Println("usage: route add <switch-oid> <vr-oid> <prefix> <nhop-oid> | route rm <switch-oid> <vr-oid> <prefix>")
		return
	}
	sw, ok := parseOID(args[1:2])
	if !ok {
		return
	}
	vr, ok := parseOID(args[2:3])
	if !ok {
		return
	}
	prefix, err := netip.ParsePrefix(args[3])
	if err != nil {
		fmt.Printf("bad prefix %q\n", args[3])
		return
	}
	entry := hal.RouteEntry{SwitchID: sw, VrID: vr, Dest: prefix}

	switch args[0] {
	case "add":
		if len(args) != 5 {
			fmt.Println("usage: route add <switch-oid> <vr-oid> <prefix> <nhop-oid>")
			return
		}
		nhop, ok := parseOID(args[4:])
		if !ok {
			return
		}
		if err := c.table.Routes().Add(entry, nhop); err != nil {
			fmt.Println(err)
			return
		}
		fmt.Println("ok")
	case "rm":
		if err := c.table.Routes().Remove(entry); err != nil {
			fmt.Println(err)
			return
		}
		fmt.Println("removed")
	default:
		fmt.Printf("unknown route subcommand %q\n", args[0])
	}
}

func (c *Console) cmdRoutes() {
	for _, entry := range c.table.Routes().Entries() {
		fmt.Println(" ", entry)
	}
}

func (c *Console) cmdSwitch() {
	ports, err := c.switches.PortList()
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("switch %s, %d ports\n", c.switches.ID(), len(ports))
}

func parseLanes(s string) ([]uint32, error) {
	parts := strings.Split(s, ",")
	lanes := make([]uint32, 0, len(parts))
	for _, p := range parts {
		lane, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("bad lane %q", p)
		}
		lanes = append(lanes, uint32(lane))
	}
	return lanes, nil
}

func parseOID(args []string) (hal.ObjectID, bool) {
	if len(args) != 1 {
		fmt.Println("expected an object id")
		return hal.NullObjectID, false
	}
	s := strings.TrimPrefix(args[0], "oid:")
	n, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		fmt.Printf("bad object id %q\n", args[0])
		return hal.NullObjectID, false
	}
	return hal.ObjectID(n), true
}
