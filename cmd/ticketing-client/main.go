package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/amlesh-kumar01/NFT-Event-Ticketing/api"
	"github.com/amlesh-kumar01/NFT-Event-Ticketing/api/auth"
	"github.com/amlesh-kumar01/NFT-Event-Ticketing/api/clients"
	"github.com/amlesh-kumar01/NFT-Event-Ticketing/cmd/flags"
	"github.com/amlesh-kumar01/NFT-Event-Ticketing/interfaces"
)

func newClient(cCtx *cli.Context) *clients.RegistryClient {
	return &clients.RegistryClient{
		ServerAddr: cCtx.String(flags.ServerAddrFlag.Name),
		Token:      cCtx.String(flags.TokenFlag.Name),
	}
}

func printJSON(v any) error {
	encoded, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(encoded))
	return nil
}

func eventIDArg(cCtx *cli.Context) (interfaces.EventID, error) {
	var id uint64
	if _, err := fmt.Sscanf(cCtx.Args().First(), "%d", &id); err != nil || id == 0 {
		return 0, fmt.Errorf("expected an event id argument")
	}
	return interfaces.EventID(id), nil
}

func ticketIDArg(cCtx *cli.Context) (interfaces.TicketID, error) {
	var id uint64
	if _, err := fmt.Sscanf(cCtx.Args().First(), "%d", &id); err != nil || id == 0 {
		return 0, fmt.Errorf("expected a ticket id argument")
	}
	return interfaces.TicketID(id), nil
}

func main() {
	app := &cli.App{
		Name:  "ticketing-client",
		Usage: "Interact with a ticketing registry server",
		Flags: []cli.Flag{
			flags.ServerAddrFlag,
			flags.TokenFlag,
		},
		Commands: []*cli.Command{
			{
				Name:      "token",
				Usage:     "Mint a bearer token for a principal",
				ArgsUsage: "<principal>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "jwt-secret",
						Usage:    "HMAC secret the server verifies tokens with",
						EnvVars:  []string{"TICKETING_JWT_SECRET"},
						Required: true,
					},
					&cli.DurationFlag{
						Name:  "ttl",
						Value: 24 * time.Hour,
						Usage: "token lifetime",
					},
				},
				Action: func(cCtx *cli.Context) error {
					principal, err := interfaces.NewPrincipalFromHex(cCtx.Args().First())
					if err != nil {
						return err
					}
					token, err := auth.NewToken([]byte(cCtx.String("jwt-secret")), principal, cCtx.Duration("ttl"))
					if err != nil {
						return err
					}
					fmt.Println(token)
					return nil
				},
			},
			{
				Name:  "create-event",
				Usage: "Register a new event",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "organizer", Required: true, Usage: "0x-prefixed principal"},
					&cli.Uint64Flag{Name: "max-supply", Usage: "0 means unlimited"},
					&cli.StringFlag{Name: "base-uri"},
				},
				Action: func(cCtx *cli.Context) error {
					id, err := newClient(cCtx).CreateEvent(api.CreateEventRequest{
						Name:      cCtx.String("name"),
						Organizer: cCtx.String("organizer"),
						MaxSupply: cCtx.Uint64("max-supply"),
						BaseURI:   cCtx.String("base-uri"),
					})
					if err != nil {
						return err
					}
					fmt.Println(id)
					return nil
				},
			},
			{
				Name:      "get-event",
				Usage:     "Fetch an event record",
				ArgsUsage: "<event-id>",
				Action: func(cCtx *cli.Context) error {
					id, err := eventIDArg(cCtx)
					if err != nil {
						return err
					}
					event, err := newClient(cCtx).Event(id)
					if err != nil {
						return err
					}
					return printJSON(event)
				},
			},
			{
				Name:  "mint",
				Usage: "Issue a ticket for an event",
				Flags: []cli.Flag{
					&cli.Uint64Flag{Name: "event", Required: true},
					&cli.StringFlag{Name: "to", Required: true, Usage: "0x-prefixed recipient"},
					&cli.StringFlag{Name: "uri", Usage: "explicit metadata location"},
				},
				Action: func(cCtx *cli.Context) error {
					id, err := newClient(cCtx).MintTicket(api.MintTicketRequest{
						EventID: interfaces.EventID(cCtx.Uint64("event")),
						To:      cCtx.String("to"),
						URI:     cCtx.String("uri"),
					})
					if err != nil {
						return err
					}
					fmt.Println(id)
					return nil
				},
			},
			{
				Name:      "get-ticket",
				Usage:     "Fetch a ticket record with its resolved metadata URI",
				ArgsUsage: "<ticket-id>",
				Action: func(cCtx *cli.Context) error {
					id, err := ticketIDArg(cCtx)
					if err != nil {
						return err
					}
					ticket, err := newClient(cCtx).Ticket(id)
					if err != nil {
						return err
					}
					return printJSON(ticket)
				},
			},
			{
				Name:      "metadata",
				Usage:     "Fetch the metadata document behind a ticket",
				ArgsUsage: "<ticket-id>",
				Action: func(cCtx *cli.Context) error {
					id, err := ticketIDArg(cCtx)
					if err != nil {
						return err
					}
					doc, err := newClient(cCtx).TicketMetadata(id)
					if err != nil {
						return err
					}
					fmt.Println(string(doc))
					return nil
				},
			},
			{
				Name:      "transfer",
				Usage:     "Move a ticket between owners",
				ArgsUsage: "<ticket-id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "from", Required: true},
					&cli.StringFlag{Name: "to", Required: true},
				},
				Action: func(cCtx *cli.Context) error {
					id, err := ticketIDArg(cCtx)
					if err != nil {
						return err
					}
					return newClient(cCtx).Transfer(id, api.TransferRequest{
						From: cCtx.String("from"),
						To:   cCtx.String("to"),
					})
				},
			},
			{
				Name:      "approve",
				Usage:     "Set or clear the transfer delegate on a ticket",
				ArgsUsage: "<ticket-id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "delegate", Usage: "empty clears the approval"},
				},
				Action: func(cCtx *cli.Context) error {
					id, err := ticketIDArg(cCtx)
					if err != nil {
						return err
					}
					return newClient(cCtx).Approve(id, cCtx.String("delegate"))
				},
			},
			{
				Name:      "revoke",
				Usage:     "Remove a ticket from circulation",
				ArgsUsage: "<ticket-id>",
				Action: func(cCtx *cli.Context) error {
					id, err := ticketIDArg(cCtx)
					if err != nil {
						return err
					}
					return newClient(cCtx).RevokeTicket(id)
				},
			},
			{
				Name:  "grant-role",
				Usage: "Grant a role to a principal",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "role", Required: true, Usage: "admin or organizer"},
					&cli.StringFlag{Name: "principal", Required: true},
				},
				Action: func(cCtx *cli.Context) error {
					return newClient(cCtx).GrantRole(api.RoleRequest{
						Role:      cCtx.String("role"),
						Principal: cCtx.String("principal"),
					})
				},
			},
			{
				Name:  "revoke-role",
				Usage: "Revoke a role from a principal",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "role", Required: true, Usage: "admin or organizer"},
					&cli.StringFlag{Name: "principal", Required: true},
				},
				Action: func(cCtx *cli.Context) error {
					return newClient(cCtx).RevokeRole(api.RoleRequest{
						Role:      cCtx.String("role"),
						Principal: cCtx.String("principal"),
					})
				},
			},
			{
				Name:      "store-metadata",
				Usage:     "Publish a metadata document read from a file or stdin",
				ArgsUsage: "[file]",
				Action: func(cCtx *cli.Context) error {
					var doc []byte
					var err error
					if path := cCtx.Args().First(); path != "" {
						doc, err = os.ReadFile(path)
					} else {
						doc, err = io.ReadAll(os.Stdin)
					}
					if err != nil {
						return err
					}
					uri, err := newClient(cCtx).StoreMetadata(doc)
					if err != nil {
						return err
					}
					fmt.Println(uri)
					return nil
				},
			},
			{
				Name:  "totals",
				Usage: "Show the registry identity and lifetime counters",
				Action: func(cCtx *cli.Context) error {
					totals, err := newClient(cCtx).Totals()
					if err != nil {
						return err
					}
					return printJSON(totals)
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
