package main

import (
	"github.com/spf13/cobra"

	"github.com/adamwoolhether/flowdock/client"
)

func inboxCmd(a *app) *cobra.Command {
	var (
		tokens      []string
		msg         client.TeamInboxMessage
		fromName    string
		fromAddress string
	)

	cmd := &cobra.Command{
		Use:   "inbox",
		Short: "Push a message to the team inbox of one or more flows",
		Long: `Pushes an HTML message to the team inbox. Without --content the
message body is read from stdin.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.newFlow(tokens)
			if err != nil {
				return err
			}

			if msg.Content, err = a.content(msg.Content); err != nil {
				return err
			}

			// A sender given on the command line is completed from the config.
			if fromName != "" || fromAddress != "" {
				sender := client.Sender{Name: a.cfg.FromName, Address: a.cfg.FromAddress}
				if fromName != "" {
					sender.Name = fromName
				}
				if fromAddress != "" {
					sender.Address = fromAddress
				}
				msg.From = &sender
			}

			if err := f.PushToTeamInbox(cmd.Context(), msg); err != nil {
				return err
			}

			a.logger.Info("team inbox message pushed", "subject", msg.Subject, "source", f.Source())
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringArrayVarP(&tokens, "token", "t", nil, "flow API token (repeatable)")
	flags.StringVar(&msg.Source, "source", "", "application name shown as the message source")
	flags.StringVar(&msg.Project, "project", "", "project name shown next to the source")
	flags.StringVar(&fromName, "from-name", "", "sender name")
	flags.StringVar(&fromAddress, "from-address", "", "sender email address")
	flags.StringVar(&msg.ReplyTo, "reply-to", "", "reply-to email address")
	flags.StringVarP(&msg.Subject, "subject", "s", "", "message subject")
	flags.StringVar(&msg.Content, "content", "", "HTML message content (default: stdin)")
	flags.StringArrayVar(&msg.Tags, "tag", nil, "message tag (repeatable)")
	flags.StringVar(&msg.Link, "link", "", "link associated with the message")

	return cmd
}

func chatCmd(a *app) *cobra.Command {
	var (
		tokens []string
		msg    client.ChatMessage
	)

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Push a chat message to one or more flows",
		Long: `Pushes a chat message as an external user. Without --content the
message is read from stdin.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.newFlow(tokens)
			if err != nil {
				return err
			}

			if msg.Content, err = a.content(msg.Content); err != nil {
				return err
			}

			if err := f.PushToChat(cmd.Context(), msg); err != nil {
				return err
			}

			a.logger.Info("chat message pushed", "external_user_name", f.ExternalUserName())
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringArrayVarP(&tokens, "token", "t", nil, "flow API token (repeatable)")
	flags.StringVarP(&msg.ExternalUserName, "user", "u", "", "display name of the sender, without whitespace")
	flags.StringVar(&msg.Content, "content", "", "message content (default: stdin)")
	flags.StringArrayVar(&msg.Tags, "tag", nil, "message tag (repeatable)")
	flags.StringVar(&msg.ThreadID, "thread-id", "", "thread to reply to")
	flags.StringVar(&msg.MessageID, "message-id", "", "message to comment on")

	return cmd
}
