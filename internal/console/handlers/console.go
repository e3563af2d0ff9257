package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/bedrockctl/internal/catalog"
	"github.com/cory-johannsen/bedrockctl/internal/console/command"
	"github.com/cory-johannsen/bedrockctl/internal/session"
	"github.com/cory-johannsen/bedrockctl/internal/storage/sqlite"
)

// SettingsStore is the settings persistence surface the handlers need.
type SettingsStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// PositionStore is the named position persistence surface the handlers need.
type PositionStore interface {
	List(ctx context.Context) ([]sqlite.NamedPosition, error)
	Get(ctx context.Context, name string) (sqlite.NamedPosition, error)
	Add(ctx context.Context, name, coords string) error
	Delete(ctx context.Context, name string) error
}

// Console owns the command dispatch table and all per-command handlers.
// It is single-flow: one Dispatch completes, including transport calls,
// before the next begins.
type Console struct {
	catalog   *catalog.Catalog
	registry  *command.Registry
	settings  SettingsStore
	positions PositionStore
	transport session.Transport
	out       io.Writer
	logger    *zap.Logger
	limit     int
}

// NewConsole creates a Console over the given collaborators.
//
// Precondition: all arguments must be non-nil; suggestionLimit >= 1.
func NewConsole(
	cat *catalog.Catalog,
	registry *command.Registry,
	settings SettingsStore,
	positions PositionStore,
	transport session.Transport,
	out io.Writer,
	logger *zap.Logger,
	suggestionLimit int,
) *Console {
	return &Console{
		catalog:   cat,
		registry:  registry,
		settings:  settings,
		positions: positions,
		transport: transport,
		out:       out,
		logger:    logger,
		limit:     suggestionLimit,
	}
}

// Registry returns the dispatch table, for the terminal completer.
func (c *Console) Registry() *command.Registry { return c.registry }

// Dispatch parses one input line, runs the matching handler, and renders the
// outcome. Every handler error except ErrExit is rendered here and absorbed:
// the loop always continues.
//
// Postcondition: Returns ErrExit on an exit request, nil otherwise.
func (c *Console) Dispatch(ctx context.Context, line string) error {
	parsed := command.Parse(line)
	if parsed.Command == "" {
		return nil
	}

	cmd, ok := c.registry.Resolve(parsed.Command)
	if !ok {
		fmt.Fprintf(c.out, "Unknown command: %s\n", parsed.Command)
		return nil
	}

	logger := c.logger.With(
		zap.String("command_id", uuid.New().String()),
		zap.String("command", cmd.Name),
	)
	logger.Debug("dispatching", zap.Strings("args", parsed.Args))

	err := c.handle(ctx, cmd, parsed)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrExit):
		return ErrExit
	}

	var usageErr *UsageError
	if errors.As(err, &usageErr) {
		fmt.Fprintln(c.out, usageErr.Error())
		return nil
	}

	var valErr *ValidationError
	if errors.As(err, &valErr) {
		fmt.Fprintln(c.out, valErr.Message)
		c.printSuggestions(valErr.Suggestions)
		return nil
	}

	var sendErr *session.SendError
	if errors.As(err, &sendErr) {
		fmt.Fprintf(c.out, "Failed to send command: %v\n", sendErr.Err)
		logger.Error("transport failure", zap.Error(err))
		return nil
	}

	fmt.Fprintf(c.out, "An error occurred: %v\n", err)
	logger.Error("handler failure", zap.Error(err), zap.Stack("stack"))
	return nil
}

// handle routes a parsed line to its handler by the command's handler id.
func (c *Console) handle(ctx context.Context, cmd *command.Command, parsed command.ParseResult) error {
	switch cmd.Handler {
	case command.HandlerHelp:
		return c.handleHelp()
	case command.HandlerExit:
		fmt.Fprintln(c.out, "Goodbye!")
		return ErrExit
	case command.HandlerSend:
		return c.handleSend(ctx, cmd, parsed)
	case command.HandlerRaw:
		return c.handleRaw(ctx, cmd, parsed)
	case command.HandlerGive:
		return c.handleGive(ctx, cmd, parsed.Args)
	case command.HandlerEnchant:
		return c.handleEnchant(ctx, cmd, parsed)
	case command.HandlerEffect:
		return c.handleEffect(ctx, cmd, parsed)
	case command.HandlerEffectClear:
		return c.handleEffectClear(ctx, cmd, parsed)
	case command.HandlerMaxEnchant:
		return c.handleMaxEnchant(ctx, cmd, parsed)
	case command.HandlerNamedPos:
		return c.handleNamedPos(ctx, cmd, parsed)
	case command.HandlerPlayer:
		return c.handlePlayer(ctx, cmd, parsed)
	case command.HandlerQuickGive:
		return c.handleQuickGive(ctx, cmd, parsed)
	case command.HandlerTeleport:
		return c.handleTeleport(ctx, cmd, parsed)
	default:
		return fmt.Errorf("no handler registered for %q", cmd.Name)
	}
}

// send relays one outbound command and prints the acknowledgement.
func (c *Console) send(ctx context.Context, outbound string) error {
	ack, err := c.transport.Send(ctx, outbound)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, ack)
	return nil
}

func (c *Console) handleHelp() error {
	cmds := c.registry.Commands()
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name < cmds[j].Name })

	fmt.Fprintln(c.out, "Available Commands:")
	t := newTable(c.out, "Command", "Description")
	for _, cmd := range cmds {
		t.AddRow(cmd.Name, cmd.Help)
	}
	t.Print()
	return nil
}

func (c *Console) handleSend(ctx context.Context, cmd *command.Command, parsed command.ParseResult) error {
	if len(parsed.Args) < 1 {
		return &UsageError{Usage: cmd.Usage}
	}
	return c.send(ctx, strings.Join(parsed.Args, " "))
}

func (c *Console) handleRaw(ctx context.Context, cmd *command.Command, parsed command.ParseResult) error {
	if parsed.RawArgs == "" {
		return &UsageError{Usage: cmd.Usage}
	}
	return c.send(ctx, parsed.RawArgs)
}

// handleGive validates the item over the combined block and item categories
// and relays a give command. Also the target of the qg rewrite.
func (c *Console) handleGive(ctx context.Context, cmd *command.Command, args []string) error {
	if len(args) < 2 {
		return &UsageError{Usage: cmd.Usage}
	}
	player, item := args[0], args[1]
	quantity := "1"
	if len(args) > 2 {
		quantity = args[2]
	}

	entry, ok := c.catalog.Resolve(item, catalog.CategoryBlock, catalog.CategoryItem)
	if !ok {
		return &ValidationError{
			Message:     fmt.Sprintf("Invalid item: %s", item),
			Suggestions: c.catalog.Suggest(item, c.limit, catalog.CategoryBlock, catalog.CategoryItem),
		}
	}

	return c.send(ctx, fmt.Sprintf("give %s %s %s", player, entry.ID, quantity))
}

func (c *Console) handleEnchant(ctx context.Context, cmd *command.Command, parsed command.ParseResult) error {
	if len(parsed.Args) < 2 {
		return &UsageError{Usage: cmd.Usage}
	}
	player, enchantment := parsed.Args[0], parsed.Args[1]

	entry, ok := c.catalog.Resolve(enchantment, catalog.CategoryEnchantment)
	if !ok {
		return &ValidationError{
			Message:     fmt.Sprintf("Invalid enchantment: %s", enchantment),
			Suggestions: c.catalog.Suggest(enchantment, c.limit, catalog.CategoryEnchantment),
		}
	}

	level := 1
	if len(parsed.Args) > 2 {
		parsedLevel, err := strconv.Atoi(parsed.Args[2])
		if err != nil {
			fmt.Fprintln(c.out, "Invalid level, using 1")
		} else {
			level = parsedLevel
		}
	}
	if level < 1 || level > entry.MaxLevel {
		fmt.Fprintf(c.out, "Warning: Level should be between 1 and %d\n", entry.MaxLevel)
		level = clamp(level, 1, entry.MaxLevel)
	}

	return c.send(ctx, fmt.Sprintf("enchant %s %s %d", player, entry.ID, level))
}

func (c *Console) handleEffect(ctx context.Context, cmd *command.Command, parsed command.ParseResult) error {
	if len(parsed.Args) < 2 {
		return &UsageError{Usage: cmd.Usage}
	}
	player, effect := parsed.Args[0], parsed.Args[1]

	entry, ok := c.catalog.Resolve(effect, catalog.CategoryEffect)
	if !ok {
		return &ValidationError{
			Message:     fmt.Sprintf("Invalid effect: %s", effect),
			Suggestions: c.catalog.Suggest(effect, c.limit, catalog.CategoryEffect),
		}
	}

	seconds := 30
	if len(parsed.Args) > 2 {
		parsedSeconds, err := strconv.Atoi(parsed.Args[2])
		switch {
		case err != nil:
			fmt.Fprintln(c.out, "Invalid duration, using 30 seconds")
		case parsedSeconds < 1:
			fmt.Fprintln(c.out, "Warning: Duration must be at least 1 second")
			seconds = 1
		default:
			seconds = parsedSeconds
		}
	}

	amplifier := 0
	if len(parsed.Args) > 3 {
		parsedAmp, err := strconv.Atoi(parsed.Args[3])
		switch {
		case err != nil:
			fmt.Fprintln(c.out, "Invalid amplifier, using 0")
		case parsedAmp < 0 || parsedAmp > 255:
			fmt.Fprintln(c.out, "Warning: Amplifier must be between 0 and 255")
			amplifier = clamp(parsedAmp, 0, 255)
		default:
			amplifier = parsedAmp
		}
	}

	hideParticles := "true"
	if len(parsed.Args) > 4 {
		hideParticles = parsed.Args[4]
	}

	return c.send(ctx, fmt.Sprintf("effect %s %s %d %d %s", player, entry.ID, seconds, amplifier, hideParticles))
}

func (c *Console) handleEffectClear(ctx context.Context, cmd *command.Command, parsed command.ParseResult) error {
	if len(parsed.Args) < 1 {
		return &UsageError{Usage: cmd.Usage}
	}
	return c.send(ctx, fmt.Sprintf("effect clear %s", parsed.Args[0]))
}

// handleMaxEnchant applies every applicable enchantment at its maximum level,
// one transport call each. Partial failure is expected: a failed send is
// reported and the batch continues.
func (c *Console) handleMaxEnchant(ctx context.Context, cmd *command.Command, parsed command.ParseResult) error {
	if len(parsed.Args) < 2 {
		return &UsageError{Usage: cmd.Usage}
	}
	// The last word is the player; multi-word item types join the rest.
	player := parsed.Args[len(parsed.Args)-1]
	itemType := strings.Join(parsed.Args[:len(parsed.Args)-1], " ")

	matches := c.catalog.EnchantmentsFor(itemType)
	if len(matches) == 0 {
		fmt.Fprintf(c.out, "No enchantments found for item type: %s\n", itemType)
		fmt.Fprintln(c.out, "Valid item types:")
		for _, tag := range c.catalog.ItemTypes() {
			fmt.Fprintf(c.out, "  - %s\n", tag)
		}
		return nil
	}

	fmt.Fprintf(c.out, "Applying %d enchantments to %s's %s...\n", len(matches), player, itemType)
	for _, entry := range matches {
		outbound := fmt.Sprintf("enchant %s %s %d", player, entry.ID, entry.MaxLevel)
		ack, err := c.transport.Send(ctx, outbound)
		if err != nil {
			fmt.Fprintf(c.out, "Failed to apply %s: %v\n", entry.DisplayName, err)
			c.logger.Warn("maxenchant send failed",
				zap.String("enchantment", entry.ID),
				zap.Error(err),
			)
			continue
		}
		fmt.Fprintf(c.out, "%s (Level %d): %s\n", entry.DisplayName, entry.MaxLevel, ack)
	}
	fmt.Fprintln(c.out, "Finished applying enchantments!")
	return nil
}

func (c *Console) handleNamedPos(ctx context.Context, cmd *command.Command, parsed command.ParseResult) error {
	if len(parsed.Args) < 1 {
		return &UsageError{Usage: cmd.Usage}
	}
	action := strings.ToLower(parsed.Args[0])

	switch action {
	case "list":
		positions, err := c.positions.List(ctx)
		if err != nil {
			return err
		}
		if len(positions) == 0 {
			fmt.Fprintln(c.out, "No named positions defined")
			return nil
		}
		fmt.Fprintln(c.out, "Named Positions:")
		t := newTable(c.out, "Name", "Coordinates")
		for _, pos := range positions {
			t.AddRow(pos.Name, pos.Coords)
		}
		t.Print()
		return nil

	case "add":
		if len(parsed.Args) < 3 {
			return &UsageError{Usage: "namedpos add <pos_name> <x y z>"}
		}
		name := parsed.Args[1]
		coords, err := ParseCoordinates(strings.Join(parsed.Args[2:], " "))
		if err != nil {
			return err
		}
		value := strings.Join(coords, " ")

		if existing, err := c.positions.Get(ctx, name); err == nil {
			return &ValidationError{
				Message: fmt.Sprintf("Position '%s' already exists with value %s", name, existing.Coords),
			}
		} else if !errors.Is(err, sqlite.ErrPositionNotFound) {
			return err
		}

		if err := c.positions.Add(ctx, name, value); err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Added position '%s' with coordinates %s\n", name, value)
		return nil

	case "del":
		if len(parsed.Args) < 2 {
			return &UsageError{Usage: "namedpos del <pos_name>"}
		}
		name := parsed.Args[1]
		if err := c.positions.Delete(ctx, name); err != nil {
			if errors.Is(err, sqlite.ErrPositionNotFound) {
				return &ValidationError{Message: fmt.Sprintf("Position '%s' does not exist", name)}
			}
			return err
		}
		fmt.Fprintf(c.out, "Removed position '%s'\n", name)
		return nil

	default:
		return &ValidationError{Message: "Action must be either 'add', 'del', or 'list'"}
	}
}

func (c *Console) handlePlayer(ctx context.Context, cmd *command.Command, parsed command.ParseResult) error {
	if len(parsed.Args) < 1 {
		return &UsageError{Usage: cmd.Usage}
	}
	action := strings.ToLower(parsed.Args[0])
	if action != "add" && action != "del" && action != "list" {
		return &ValidationError{Message: "Action must be either 'add', 'del', or 'list'"}
	}

	players, err := c.loadPlayers(ctx)
	if err != nil {
		return err
	}

	if action == "list" {
		if len(players) == 0 {
			fmt.Fprintln(c.out, "No players in the list")
			return nil
		}
		fmt.Fprintln(c.out, "Current players:")
		for _, player := range players {
			fmt.Fprintf(c.out, "  - %s\n", player)
		}
		return nil
	}

	if len(parsed.Args) < 2 {
		return &UsageError{Usage: "player add|del <playername>"}
	}
	name := parsed.Args[1]

	switch action {
	case "add":
		if containsString(players, name) {
			return &ValidationError{Message: fmt.Sprintf("Player '%s' is already in the list", name)}
		}
		players = append(players, name)
		fmt.Fprintf(c.out, "Added player '%s' to the list\n", name)
	case "del":
		if !containsString(players, name) {
			return &ValidationError{Message: fmt.Sprintf("Player '%s' is not in the list", name)}
		}
		players = removeString(players, name)
		fmt.Fprintf(c.out, "Removed player '%s' from the list\n", name)
	}

	// Deduplicated and sorted on every write.
	sort.Strings(players)
	return c.settings.Set(ctx, sqlite.SettingPlayers, strings.Join(players, ","))
}

// handleQuickGive rewrites into give using the persisted default player.
func (c *Console) handleQuickGive(ctx context.Context, cmd *command.Command, parsed command.ParseResult) error {
	if len(parsed.Args) < 1 {
		return &UsageError{Usage: cmd.Usage}
	}

	defaultPlayer, err := c.settings.Get(ctx, sqlite.SettingDefaultPlayer)
	if err != nil {
		if errors.Is(err, sqlite.ErrSettingNotFound) {
			return &ValidationError{
				Message: "No default player set. Use 'player add <name>' to add a player first.",
			}
		}
		return err
	}

	quantity := "1"
	if len(parsed.Args) > 1 {
		quantity = parsed.Args[1]
	}

	giveCmd, ok := c.registry.Resolve("give")
	if !ok {
		return errors.New("give command not registered")
	}
	return c.handleGive(ctx, giveCmd, []string{defaultPlayer, parsed.Args[0], quantity})
}

func (c *Console) handleTeleport(ctx context.Context, cmd *command.Command, parsed command.ParseResult) error {
	if len(parsed.Args) < 2 {
		return &UsageError{Usage: cmd.Usage}
	}
	player := parsed.Args[0]
	destination := strings.Join(parsed.Args[1:], " ")

	// @player teleports to another player.
	if target, ok := strings.CutPrefix(destination, "@"); ok {
		return c.send(ctx, fmt.Sprintf("tp %s %s", player, target))
	}

	// A named position resolves to its stored coordinates.
	if pos, err := c.positions.Get(ctx, destination); err == nil {
		destination = pos.Coords
	} else if !errors.Is(err, sqlite.ErrPositionNotFound) {
		return err
	}

	coords, err := ParseCoordinates(destination)
	if err != nil {
		return err
	}
	return c.send(ctx, fmt.Sprintf("tp %s %s", player, strings.Join(coords, " ")))
}

// loadPlayers reads the tracked player set from settings, dropping empties.
func (c *Console) loadPlayers(ctx context.Context) ([]string, error) {
	value, err := c.settings.Get(ctx, sqlite.SettingPlayers)
	if err != nil {
		if errors.Is(err, sqlite.ErrSettingNotFound) {
			return nil, nil
		}
		return nil, err
	}
	var players []string
	for _, part := range strings.Split(value, ",") {
		if part != "" {
			players = append(players, part)
		}
	}
	return players, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func removeString(list []string, s string) []string {
	out := list[:0]
	for _, item := range list {
		if item != s {
			out = append(out, item)
		}
	}
	return out
}
