package main

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/amonks/kanban/board"
	"github.com/amonks/kanban/internal/editor"
	"github.com/amonks/kanban/internal/listflags"
	"github.com/amonks/kanban/internal/ui"
	"github.com/amonks/kanban/internal/validation"
	"github.com/spf13/cobra"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks on a board",
}

// task add
var taskAddCmd = &cobra.Command{
	Use:   "add <board> <column> [title]",
	Short: "Add a task to the end of a column",
	Long: `Add a task to the end of a column.

With --edit, or when running interactively without a title, opens $EDITOR
on a TOML representation of the task.`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runTaskAdd,
}

var (
	taskAddDescription string
	taskAddPriority    string
	taskAddDue         string
	taskAddEdit        bool
	taskAddNoEdit      bool
)

// task edit
var taskEditCmd = &cobra.Command{
	Use:   "edit <board> <task>",
	Short: "Edit a task",
	Long: `Edit a task.

Opens $EDITOR when running interactively and no field flags are given.
Use --no-edit to skip the editor, or --edit to force it.`,
	Args: cobra.ExactArgs(2),
	RunE: runTaskEdit,
}

var (
	taskEditTitle       string
	taskEditDescription string
	taskEditPriority    string
	taskEditDue         string
	taskEditClearDue    bool
	taskEditEdit        bool
	taskEditNoEdit      bool
)

// task show
var taskShowCmd = &cobra.Command{
	Use:   "show <board> <task>",
	Short: "Show a task with its rendered description",
	Args:  cobra.ExactArgs(2),
	RunE:  runTaskShow,
}

// task list
var taskListCmd = &cobra.Command{
	Use:   "list <board>",
	Short: "List a board's tasks",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskList,
}

var (
	taskListColumn     string
	taskListOpen       bool
	taskListByPriority bool
)

// task move
var taskMoveCmd = &cobra.Command{
	Use:   "move <board> <task> <column>",
	Short: "Move a task to the end of another column",
	Args:  cobra.ExactArgs(3),
	RunE:  runTaskMove,
}

// task toggle
var taskToggleCmd = &cobra.Command{
	Use:   "toggle <board> <task>",
	Short: "Flip a task between completed and not completed",
	Args:  cobra.ExactArgs(2),
	RunE:  runTaskToggle,
}

// task delete
var taskDeleteCmd = &cobra.Command{
	Use:   "delete <board> <task>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(2),
	RunE:  runTaskDelete,
}

func init() {
	rootCmd.AddCommand(taskCmd)
	taskCmd.AddCommand(taskAddCmd, taskEditCmd, taskShowCmd, taskListCmd, taskMoveCmd, taskToggleCmd, taskDeleteCmd)

	priorityUsage := "Priority (" + validation.FormatValidValues(board.ValidPriorities()) + ")"

	taskAddCmd.Flags().StringVarP(&taskAddDescription, "description", "d", "", "Description (use '-' to read from stdin)")
	taskAddCmd.Flags().StringVarP(&taskAddPriority, "priority", "p", string(board.PriorityNormal), priorityUsage)
	taskAddCmd.Flags().StringVar(&taskAddDue, "due", "", "Due date (YYYY-MM-DD)")
	taskAddCmd.Flags().BoolVarP(&taskAddEdit, "edit", "e", false, "Open $EDITOR")
	taskAddCmd.Flags().BoolVar(&taskAddNoEdit, "no-edit", false, "Do not open $EDITOR")

	taskEditCmd.Flags().StringVar(&taskEditTitle, "title", "", "New title")
	taskEditCmd.Flags().StringVarP(&taskEditDescription, "description", "d", "", "New description (use '-' to read from stdin)")
	taskEditCmd.Flags().StringVarP(&taskEditPriority, "priority", "p", "", priorityUsage)
	taskEditCmd.Flags().StringVar(&taskEditDue, "due", "", "New due date (YYYY-MM-DD)")
	taskEditCmd.Flags().BoolVar(&taskEditClearDue, "clear-due", false, "Remove the due date")
	taskEditCmd.Flags().BoolVarP(&taskEditEdit, "edit", "e", false, "Open $EDITOR (default if interactive and no flags)")
	taskEditCmd.Flags().BoolVar(&taskEditNoEdit, "no-edit", false, "Do not open $EDITOR")

	taskListCmd.Flags().StringVar(&taskListColumn, "column", "", "Only list tasks in this column")
	listflags.AddOpenFlag(taskListCmd, &taskListOpen)
	taskListCmd.Flags().BoolVar(&taskListByPriority, "by-priority", false, "Sort by priority, highest first")
}

func parseDueFlag(value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	due, err := ui.ParseDate(strings.TrimSpace(value), time.Local)
	if err != nil {
		return nil, err
	}
	return &due, nil
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	descriptionStdin := cmd.Flags().Changed("description") && taskAddDescription == "-"
	if cmd.Flags().Changed("description") {
		desc, err := resolveDescriptionFromStdin(taskAddDescription, cmd.InOrStdin())
		if err != nil {
			return err
		}
		taskAddDescription = desc
	}

	var title string
	if len(args) > 2 {
		title = args[2]
	}
	useEditor, err := editorRequest{
		hasFields:        title != "",
		edit:             taskAddEdit,
		noEdit:           taskAddNoEdit,
		descriptionStdin: descriptionStdin,
		interactive:      editor.IsInteractive(),
	}.useEditor()
	if err != nil {
		return err
	}

	var data board.TaskData
	if useEditor {
		form := editor.DefaultCreateForm()
		form.Title = title
		form.Description = taskAddDescription
		form.Priority = taskAddPriority
		form.Due = taskAddDue

		parsed, err := editor.EditTask(form)
		if err != nil {
			return err
		}
		data = parsed.TaskData()
	} else {
		if title == "" {
			return fmt.Errorf("title is required (use --edit to open editor)")
		}
		due, err := parseDueFlag(taskAddDue)
		if err != nil {
			return err
		}
		data = board.TaskData{
			Title:       title,
			Description: taskAddDescription,
			DueDate:     due,
			Priority:    board.Priority(taskAddPriority),
		}
	}

	return withSession(cmd, func(sess *session) error {
		b, err := resolveBoard(sess.store, args[0])
		if err != nil {
			return err
		}
		column, err := resolveColumn(b, args[1])
		if err != nil {
			return err
		}

		created, err := sess.store.CreateTask(b.ID, column.ID, data)
		if err != nil {
			return err
		}

		b, _ = sess.store.Board(b.ID)
		highlight := taskHighlighter(b)
		return printResult(cmd, taskJSON{Task: created, ColumnID: column.ID},
			"Added task %s to %s: %s", highlight(created.ID), column.Title, created.Title)
	})
}

func runTaskEdit(cmd *cobra.Command, args []string) error {
	descriptionStdin := cmd.Flags().Changed("description") && taskEditDescription == "-"
	if cmd.Flags().Changed("description") {
		desc, err := resolveDescriptionFromStdin(taskEditDescription, cmd.InOrStdin())
		if err != nil {
			return err
		}
		taskEditDescription = desc
	}

	hasFlags := hasChangedFlags(cmd, "title", "description", "priority", "due", "clear-due")
	useEditor, err := editorRequest{
		hasFields:        hasFlags,
		edit:             taskEditEdit,
		noEdit:           taskEditNoEdit,
		descriptionStdin: descriptionStdin,
		interactive:      editor.IsInteractive(),
	}.useEditor()
	if err != nil {
		return err
	}
	if !useEditor && !hasFlags {
		return fmt.Errorf("nothing to update (pass field flags or --edit)")
	}

	return withSession(cmd, func(sess *session) error {
		b, err := resolveBoard(sess.store, args[0])
		if err != nil {
			return err
		}
		column, task, err := resolveTask(b, args[1])
		if err != nil {
			return err
		}

		updated, err := applyTaskFlags(cmd, task)
		if err != nil {
			return err
		}

		if useEditor {
			parsed, err := editor.EditTask(editor.FormFromTask(updated))
			if err != nil {
				return err
			}
			updated = parsed.Apply(updated)
		}

		result, err := sess.store.UpdateTask(b.ID, column.ID, updated)
		if err != nil {
			return err
		}
		if err := resultError(result, "task", task.ID); err != nil {
			return err
		}

		_, saved, _ := sess.store.FindTask(b.ID, task.ID)
		highlight := taskHighlighter(b)
		return printResult(cmd, taskJSON{Task: saved, ColumnID: column.ID}, "Updated task %s: %s", highlight(task.ID), saved.Title)
	})
}

func applyTaskFlags(cmd *cobra.Command, task board.Task) (board.Task, error) {
	if cmd.Flags().Changed("title") {
		task.Title = taskEditTitle
	}
	if cmd.Flags().Changed("description") {
		task.Description = taskEditDescription
	}
	if cmd.Flags().Changed("priority") {
		task.Priority = board.Priority(taskEditPriority)
	}
	if cmd.Flags().Changed("due") {
		due, err := parseDueFlag(taskEditDue)
		if err != nil {
			return board.Task{}, err
		}
		task.DueDate = due
	}
	if taskEditClearDue {
		task.DueDate = nil
	}
	return task, nil
}

func runTaskShow(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(sess *session) error {
		b, err := resolveBoard(sess.store, args[0])
		if err != nil {
			return err
		}
		column, task, err := resolveTask(b, args[1])
		if err != nil {
			return err
		}
		if jsonOutput {
			return encodeJSON(cmd.OutOrStdout(), taskJSON{Task: task, ColumnID: column.ID})
		}

		_, err = fmt.Fprint(cmd.OutOrStdout(), formatTaskDetail(task, column, taskHighlighter(b), time.Now()))
		return err
	})
}

func runTaskList(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(sess *session) error {
		b, err := resolveBoard(sess.store, args[0])
		if err != nil {
			return err
		}

		columnID := ""
		if taskListColumn != "" {
			column, err := resolveColumn(b, taskListColumn)
			if err != nil {
				return err
			}
			columnID = column.ID
		}

		items := listTasks(b, columnID, taskListOpen, taskListByPriority)
		if jsonOutput {
			return encodeJSON(cmd.OutOrStdout(), items)
		}
		if len(items) == 0 {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "No tasks.")
			return err
		}

		_, err = fmt.Fprint(cmd.OutOrStdout(), formatTaskTable(b, items, taskHighlighter(b), time.Now()))
		return err
	})
}

// listTasks flattens b's tasks in column order, optionally filtered to one
// column or to open tasks, and optionally sorted by priority.
func listTasks(b board.Board, columnID string, openOnly, byPriority bool) []taskJSON {
	items := make([]taskJSON, 0, b.TaskCount())
	for _, column := range b.Columns {
		if columnID != "" && column.ID != columnID {
			continue
		}
		for _, task := range column.Tasks {
			if openOnly && task.Completed {
				continue
			}
			items = append(items, taskJSON{Task: task, ColumnID: column.ID})
		}
	}
	if byPriority {
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Priority.Rank() < items[j].Priority.Rank()
		})
	}
	return items
}

func runTaskMove(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(sess *session) error {
		b, err := resolveBoard(sess.store, args[0])
		if err != nil {
			return err
		}
		source, task, err := resolveTask(b, args[1])
		if err != nil {
			return err
		}
		dest, err := resolveColumn(b, args[2])
		if err != nil {
			return err
		}

		result, err := sess.store.MoveTask(b.ID, source.ID, dest.ID, task.ID)
		if err != nil {
			return err
		}
		if err := resultError(result, "task", task.ID); err != nil {
			return err
		}

		highlight := taskHighlighter(b)
		if !result.Changed() {
			return printResult(cmd, resultJSON{Result: result, ID: task.ID}, "Task %s is already in %s", highlight(task.ID), dest.Title)
		}
		return printResult(cmd, resultJSON{Result: result, ID: task.ID}, "Moved task %s: %s -> %s", highlight(task.ID), source.Title, dest.Title)
	})
}

func runTaskToggle(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(sess *session) error {
		b, err := resolveBoard(sess.store, args[0])
		if err != nil {
			return err
		}
		column, task, err := resolveTask(b, args[1])
		if err != nil {
			return err
		}

		result, err := sess.store.ToggleTask(b.ID, column.ID, task.ID)
		if err != nil {
			return err
		}
		if err := resultError(result, "task", task.ID); err != nil {
			return err
		}

		state := "completed"
		if task.Completed {
			state = "not completed"
		}
		highlight := taskHighlighter(b)
		return printResult(cmd, resultJSON{Result: result, ID: task.ID}, "Marked task %s %s: %s", highlight(task.ID), state, task.Title)
	})
}

func runTaskDelete(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(sess *session) error {
		b, err := resolveBoard(sess.store, args[0])
		if err != nil {
			return err
		}
		column, task, err := resolveTask(b, args[1])
		if err != nil {
			return err
		}

		highlight := taskHighlighter(b)
		result, err := sess.store.DeleteTask(b.ID, column.ID, task.ID)
		if err != nil {
			return err
		}
		if err := resultError(result, "task", task.ID); err != nil {
			return err
		}
		return printResult(cmd, resultJSON{Result: result, ID: task.ID}, "Deleted task %s: %s", highlight(task.ID), task.Title)
	})
}
