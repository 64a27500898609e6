package app

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle              = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	helpStyle                = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle              = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	dirtyStyle               = lipgloss.NewStyle().Foreground(lipgloss.Color("179")).Bold(true)
	savingStyle              = lipgloss.NewStyle().Foreground(lipgloss.Color("110")).Bold(true)
	savedStyle               = lipgloss.NewStyle().Foreground(lipgloss.Color("70"))
	noteStyle                = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	starredStyle             = lipgloss.NewStyle().Foreground(lipgloss.Color("179"))
	archivedStyle            = lipgloss.NewStyle().Foreground(lipgloss.Color("243")).Faint(true)
	selectedStyle            = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("236"))
	tagStyle                 = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
	tagFilterStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("117")).Bold(true)
	dividerStyle             = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	noteMetaStyle            = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Faint(true)
	fieldLabelStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	confirmTitleStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230"))
	confirmDialogStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("208")).Padding(1, 2)
	confirmButtonStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	confirmButtonActiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("239")).Bold(true)
	toastInfoStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("29")).Bold(true)
	toastWarningStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("136")).Bold(true)
	toastErrorStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("160")).Bold(true)
)
