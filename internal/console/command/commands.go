// Package command provides the console command registry, parser, and built-in
// command definitions.
package command

// Handler identifiers mapping commands to console handler methods.
const (
	HandlerHelp        = "help"
	HandlerExit        = "exit"
	HandlerSend        = "send"
	HandlerRaw         = "raw"
	HandlerGive        = "give"
	HandlerEnchant     = "enchant"
	HandlerEffect      = "effect"
	HandlerEffectClear = "effectclear"
	HandlerMaxEnchant  = "maxenchant"
	HandlerNamedPos    = "namedpos"
	HandlerPlayer      = "player"
	HandlerQuickGive   = "quickgive"
	HandlerTeleport    = "tp"
)

// Command defines an operator-invocable console command.
type Command struct {
	// Name is the canonical command name.
	Name string
	// Aliases are alternate names for this command.
	Aliases []string
	// Help is the short help text displayed by the help command.
	Help string
	// Usage is the usage line printed on too few arguments.
	Usage string
	// Handler maps to a console handler method.
	Handler string
}

// BuiltinCommands returns all built-in console commands.
func BuiltinCommands() []Command {
	return []Command{
		{Name: "help", Aliases: []string{"?"}, Help: "Display help information about available commands", Usage: "help", Handler: HandlerHelp},
		{Name: "exit", Aliases: []string{"quit"}, Help: "Exit the application", Usage: "exit", Handler: HandlerExit},
		{Name: "sc", Aliases: nil, Help: "Send a command to the Minecraft server", Usage: "sc <command>", Handler: HandlerSend},
		{Name: "raw", Aliases: nil, Help: "Send raw input directly to the server", Usage: "raw <text>", Handler: HandlerRaw},
		{Name: "give", Aliases: nil, Help: "Give items to a player (give playername block qty)", Usage: "give <playername> <item> [quantity]", Handler: HandlerGive},
		{Name: "enchant", Aliases: nil, Help: "Enchant a player's held item (enchant playername enchantment level)", Usage: "enchant <playername> <enchantment> [level]", Handler: HandlerEnchant},
		{Name: "effect", Aliases: nil, Help: "Apply effect to a player (effect player effect [seconds] [amplifier] [hideParticles])", Usage: "effect <player> <effect> [seconds] [amplifier] [hideParticles]", Handler: HandlerEffect},
		{Name: "effectclear", Aliases: nil, Help: "Clear all effects from a player (effectclear playername)", Usage: "effectclear <playername>", Handler: HandlerEffectClear},
		{Name: "maxenchant", Aliases: nil, Help: "Apply all possible max level enchantments for an item type (maxenchant itemtype playername)", Usage: "maxenchant <itemtype> <playername>", Handler: HandlerMaxEnchant},
		{Name: "namedpos", Aliases: nil, Help: "Manage named positions (namedpos list | namedpos add|del <pos_name> <x y z>)", Usage: "namedpos list | namedpos add|del <pos_name> <x y z>", Handler: HandlerNamedPos},
		{Name: "player", Aliases: nil, Help: "Manage players list (player list | player add|del <playername>)", Usage: "player list | player add|del <playername>", Handler: HandlerPlayer},
		{Name: "qg", Aliases: []string{"quickgive"}, Help: "Quickly give items to default player (qg <item> [quantity])", Usage: "qg <item> [quantity]", Handler: HandlerQuickGive},
		{Name: "tp", Aliases: nil, Help: "Teleport a player to coordinates, named position, or another player.", Usage: "tp <playername> <x y z | named_pos | @playername>", Handler: HandlerTeleport},
	}
}
