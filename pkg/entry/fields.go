package entry

// Element ids of the posting screens. These address a fixed screen
// layout of the target terminal and must match it exactly; they are a
// boundary contract, not something this package can verify.
const (
	idMainWindow = "wnd[0]"

	// Posting line key/account fields.
	idPostingKey       = "wnd[0]/usr/ctxtRF05A-NEWBS"
	idAccount          = "wnd[0]/usr/ctxtRF05A-NEWKO"
	idSpecialIndicator = "wnd[0]/usr/ctxtRF05A-NEWUM"

	// Compensation-document header fields.
	idHeaderMode     = "wnd[0]/usr/sub:SAPMF05A:0122/radRF05A-XPOS1[3,0]"
	idDocDate        = "wnd[0]/usr/ctxtBKPF-BLDAT"
	idAccountingDate = "wnd[0]/usr/ctxtBKPF-BUDAT"
	idCompanyCode    = "wnd[0]/usr/ctxtBKPF-BUKRS"
	idDocType        = "wnd[0]/usr/ctxtBKPF-BLART"

	// Line-item data fields.
	idAmount        = "wnd[0]/usr/txtBSEG-WRBTR"
	idDueDate       = "wnd[0]/usr/ctxtBSEG-ZFBDT"
	idPaymentMethod = "wnd[0]/usr/ctxtBSEG-ZLSCH"
	idAssignment    = "wnd[0]/usr/txtBSEG-ZUONR"
	idCommentary    = "wnd[0]/usr/ctxtBSEG-SGTXT"

	// Line position navigation.
	idLineCount      = "wnd[0]/usr/txtRF05A-ANZAZ"
	idPositionDialog = "wnd[1]/usr/txt*BSEG-BUZEI"
	idPositionOK     = "wnd[1]/tbar[0]/btn[13]"

	// Open-item search screen.
	idSearchButton      = "wnd[0]/tbar[1]/btn[6]"
	idSearchCategory    = "wnd[0]/usr/ctxtRF05A-AGKOA"
	idSearchCompanyCode = "wnd[0]/usr/ctxtRF05A-AGBUK"
	idSearchAccount     = "wnd[0]/usr/ctxtRF05A-AGKON"
	idSearchExecute     = "wnd[0]/tbar[1]/btn[16]"

	// Open-item processing screen.
	idOpenItemsPane  = "wnd[0]/usr/tabsTS/tabpMAIN/ssubPAGE:SAPDF05X:6102"
	idSelectAll      = idOpenItemsPane + "/btnICON_SELECT_ALL"
	idActivateItems  = idOpenItemsPane + "/btnIC_Z+"
	idDifference     = idOpenItemsPane + "/txtRF05A-DIFFB"
	idItemCount      = idOpenItemsPane + "/txtRF05A-ANZPO"
	idItemsAmount    = idOpenItemsPane + "/txtRF05A-NETTO"
	idClearingAmount = idOpenItemsPane + "/txtRF05A-BETRG"

	// Simulation menu entry.
	idSimulateMenu = "wnd[0]/mbar/menu[0]/menu[3]"

	// Document display screen.
	idDocumentNumber = "wnd[0]/usr/txtRF05L-BELNR"

	// Print/spool archiving.
	idPrintButton     = "wnd[0]/tbar[0]/btn[86]"
	idPrintImmediate  = "wnd[1]/usr/subSUBSCREEN:SAPLSPRI:0600/cmbPRIPAR_DYN-PRIMM"
	idPrintContinue   = "wnd[1]/tbar[0]/btn[13]"
	idSpoolFirstEntry = "wnd[0]/usr/lbl[3,3]"
	idSpoolTitle      = "wnd[0]/usr/txtTSP01_SP0R-RQTITLE"
	idSpoolExecute    = "wnd[0]/tbar[1]/btn[8]"
	idSpoolOpen       = "wnd[1]/usr/btnBUTTON_1"
	idSpoolOutput     = "wnd[0]/usr/chk[1,3]"
	idSpoolSaveMenu   = "wnd[0]/mbar/menu[0]/menu[2]/menu[2]"
	idSavePath        = "wnd[1]/usr/ctxtDY_PATH"
	idSaveFilename    = "wnd[1]/usr/ctxtDY_FILENAME"
	idSaveConfirm     = "wnd[1]/tbar[0]/btn[0]"
)

// The business-area field moves between these ids depending on the
// active subscreen; writes try each in order and ignore misses.
var businessAreaFields = []string{
	"wnd[0]/usr/ctxtBSEG-GSBER",
	"wnd[0]/usr/subBLOCK:SAPLKACB:1007/ctxtCOBL-GSBER",
	"wnd[0]/usr/subBLOCK:SAPLKACB:1010/ctxtCOBL-GSBER",
	"wnd[1]/usr/ctxtCOBL-GSBER",
}

// Same for the cost-center field.
var costCenterFields = []string{
	"wnd[0]/usr/subBLOCK:SAPLKACB:1010/ctxtCOBL-KOSTL",
	"wnd[0]/usr/subBLOCK:SAPLKACB:1007/ctxtCOBL-KOSTL",
	"wnd[1]/usr/ctxtCOBL-KOSTL",
}

// Transaction codes driven by this package.
const (
	// TxnPostWithClearing opens the post-with-clearing transaction.
	TxnPostWithClearing = "F-04"
	// TxnDisplayDocument opens the document display transaction.
	TxnDisplayDocument = "FB03"
	// TxnSpoolList opens the spool output list.
	TxnSpoolList = "SP01"
)
