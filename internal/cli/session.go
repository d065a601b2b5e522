package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/wiregraph/pkg/session"
)

// newSessionStore opens the session store, honouring $WIREGRAPH_SESSIONS.
func (c *CLI) newSessionStore() (*session.FileStore, error) {
	return session.NewFileStore(sessionDir())
}

// sessionCommand creates the session management command.
func (c *CLI) sessionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage saved drawings",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List saved drawings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.newSessionStore()
			if err != nil {
				return err
			}
			names, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(names) == 0 {
				printInfo("No saved drawings")
				printDetail("Directory: %s", store.Path())
				return nil
			}
			for _, name := range names {
				sess, err := store.Get(cmd.Context(), name)
				if err != nil || sess == nil {
					continue
				}
				printKeyValue(name, sess.UpdatedAt.Format("2006-01-02 15:04")+"  "+StyleDim.Render(sess.Revision.String()))
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete [name]",
		Short: "Delete a saved drawing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.newSessionStore()
			if err != nil {
				return err
			}
			if err := store.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			printSuccess("Deleted %s", args[0])
			return nil
		},
	})

	return cmd
}
