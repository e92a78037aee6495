package entity

// PosicaoAssinatura is one signature placement on the document. X and Y are
// percentage offsets as strings (Autentique wire format), Z is the page.
type PosicaoAssinatura struct {
	X       string `json:"x"`
	Y       string `json:"y"`
	Z       int    `json:"z"`
	Element string `json:"element"`
}

// SignatarioInput is one required signatory in a signature request.
type SignatarioInput struct {
	Name      string              `json:"name"`
	Email     string              `json:"email"`
	Positions []PosicaoAssinatura `json:"positions"`
}

// DocumentoAssinaturaInput is the request to submit a contract for
// signature. ArquivoURL points at the PDF in the blob store.
type DocumentoAssinaturaInput struct {
	NomeDocumento string            `json:"nome_documento"`
	ArquivoURL    string            `json:"arquivo_url"`
	CCEmail       string            `json:"cc_email,omitempty"`
	Signers       []SignatarioInput `json:"signers"`
}

// AutentiqueSignature is one signature record returned by createDocument.
// The account owner and CC recipients appear here with an empty name.
type AutentiqueSignature struct {
	PublicID string `json:"public_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

// AutentiqueDocument is the createDocument payload.
type AutentiqueDocument struct {
	ID         string                `json:"id"`
	Name       string                `json:"name"`
	Signatures []AutentiqueSignature `json:"signatures"`
}

// AutentiqueDocumentFiles holds the artifact URLs of a provider document.
// Signed is empty until the provider has produced the signed original.
type AutentiqueDocumentFiles struct {
	Original string `json:"original"`
	Signed   string `json:"signed"`
}

// AutentiqueDocumentDetail is the getDocument payload.
type AutentiqueDocumentDetail struct {
	ID    string                  `json:"id"`
	Name  string                  `json:"name"`
	Files AutentiqueDocumentFiles `json:"files"`
}

// AutentiqueDocumentSummary is one entry of documentsByFolder.
type AutentiqueDocumentSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

// SignatarioOutput is one real signatory with its shareable signing link.
// LinkAssinatura is nil when link generation failed for that signer.
type SignatarioOutput struct {
	PublicID       string  `json:"public_id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	LinkAssinatura *string `json:"link_assinatura"`
}

// ResultadoDocumentoAssinatura is the outcome of a signature submission.
type ResultadoDocumentoAssinatura struct {
	DocumentID     string             `json:"document_id"`
	Nome           string             `json:"nome"`
	NumeroContrato string             `json:"numero_contrato"`
	ProcessoID     uint               `json:"processo_id"`
	Signers        []SignatarioOutput `json:"signers"`
}
