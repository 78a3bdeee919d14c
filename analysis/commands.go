package analysis

// Command is a host action operating on a whole view, e.g. "Scan for
// Pattern" or "Load Pattern File".
type Command struct {
	Name        string
	Description string
	Run         func(v View)
}

// AddressCommand is a host action operating on one address, offered only
// where its applicability predicate holds.
type AddressCommand struct {
	Name        string
	Description string
	Run         func(v View, addr uint64)

	// IsValid gates where the command is offered. nil means everywhere.
	IsValid func(v View, addr uint64) bool
}

// Registry is the command-registration point handed to the host. The host
// queries it to populate menus; the scanner registers its commands at
// startup.
type Registry struct {
	commands []Command
	address  []AddressCommand
}

// Register adds a view-level command.
func (r *Registry) Register(cmd Command) {
	r.commands = append(r.commands, cmd)
}

// RegisterForAddress adds an address-level command with its predicate.
func (r *Registry) RegisterForAddress(cmd AddressCommand) {
	r.address = append(r.address, cmd)
}

// Commands returns all view-level commands.
func (r *Registry) Commands() []Command {
	return r.commands
}

// CommandsFor returns the address-level commands applicable at addr.
func (r *Registry) CommandsFor(v View, addr uint64) []AddressCommand {
	var out []AddressCommand
	for _, cmd := range r.address {
		if cmd.IsValid == nil || cmd.IsValid(v, addr) {
			out = append(out, cmd)
		}
	}
	return out
}
