package terminal

// Window titles of the terminal screens this tool drives. Matching is
// by substring: the terminal appends transaction context to titles.
const (
	TitleHome            = "SAP Easy Access"
	TitleSummary         = "Visualizar Resumen"
	TitleOpenItems       = "Procesar partidas abiertas"
	TitleClearingHeader  = "Liquidar compensación: Datos cabecera"
	TitleDocumentDisplay = "Visualizar documento:Acceso"
)

// Element ids shared by every screen.
const (
	idMainWindow   = "wnd[0]"
	idStatusBar    = "wnd[0]/sbar"
	idCommandField = "wnd[0]/tbar[0]/okcd"
)

// Toolbar buttons used while navigating.
const (
	// IDSummaryButton advances to the document summary screen.
	IDSummaryButton = "wnd[0]/tbar[1]/btn[14]"
	// IDOpenItemsButton advances to the open-items processing screen.
	IDOpenItemsButton = "wnd[0]/tbar[1]/btn[16]"
	idVariantButton   = "wnd[0]/tbar[1]/btn[17]"
)

// Variant selection dialog fields.
const (
	idVariantName       = "wnd[1]/usr/txtV-LOW"
	idVariantEnviron    = "wnd[1]/usr/ctxtENVIR-LOW"
	idVariantAuthor     = "wnd[1]/usr/txtENAME-LOW"
	idVariantModifiedBy = "wnd[1]/usr/txtAENAME-LOW"
	idVariantLanguage   = "wnd[1]/usr/txtMLANGU-LOW"
	idVariantExecute    = "wnd[1]/tbar[0]/btn[8]"
)

// homeCommand clears the running transaction and returns to the home
// screen.
const homeCommand = "/n00"
