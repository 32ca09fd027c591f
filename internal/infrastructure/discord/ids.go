package discord

// Component and modal custom ids. The approve/reject/edit-modal ids address
// existing rendered messages; changing them breaks buttons on messages
// already in channels.
const (
	// CustomIDReportButton opens the blank report modal
	CustomIDReportButton = "sales_report"

	// CustomIDReportModal is the new-report modal submission
	CustomIDReportModal = "sales_report_modal"

	// CustomIDEditButton starts an edit from a rendered report message
	CustomIDEditButton = "sales_report_edit"

	// CustomIDEditModalPrefix prefixes edit modal ids; the full id carries
	// the original date and the message id being edited
	CustomIDEditModalPrefix = "sales_report_edit_modal_"

	// CustomIDEditModalPattern captures (originalDate, messageID)
	CustomIDEditModalPattern = `^sales_report_edit_modal_(\d{4}-\d{2}-\d{2})_(\d+)$`

	// CustomIDApprovePrefix / CustomIDRejectPrefix carry the report date
	CustomIDApprovePrefix = "uriage_approve_"
	CustomIDRejectPrefix  = "uriage_reject_"

	// CustomIDRoleSelect is the approver role select menu
	CustomIDRoleSelect = "select_approval_roles"
)
