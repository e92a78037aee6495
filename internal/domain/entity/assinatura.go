package entity

import "time"

// Document signature statuses as tracked against the signing provider.
const (
	StatusDocumentoAguardandoAssinatura = "aguardando_assinatura"
	StatusDocumentoAssinado             = "assinado"
)

// Per-signer statuses.
const (
	StatusSignatarioAguardando = "aguardando"
	StatusSignatarioAssinado   = "assinado"
)

// DocumentoAssinatura tracks one document submitted to Autentique for
// signature on behalf of a Processo.
type DocumentoAssinatura struct {
	ID                    uint      `gorm:"primaryKey" json:"id"`
	ProcessoID            uint      `gorm:"not null;index" json:"processo_id"`
	DocumentoIDAutentique string    `gorm:"not null;index" json:"documento_id_autentique"`
	NomeDocumento         string    `gorm:"not null" json:"nome_documento"`
	Status                string    `gorm:"not null;default:'aguardando_assinatura'" json:"status"`
	DataUpload            time.Time `gorm:"autoCreateTime" json:"data_upload"`

	Assinaturas []AssinaturaSignatario `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"assinaturas,omitempty"`
}

func (DocumentoAssinatura) TableName() string {
	return "documentos_assinatura"
}

// AssinaturaSignatario is one required signatory on a DocumentoAssinatura.
// The webhook matches callbacks to signers by email, so (documento, email)
// is unique.
type AssinaturaSignatario struct {
	ID                    uint       `gorm:"primaryKey" json:"id"`
	DocumentoAssinaturaID uint       `gorm:"not null;uniqueIndex:idx_documento_email" json:"documento_assinatura_id"`
	Nome                  string     `gorm:"not null" json:"nome"`
	Email                 string     `gorm:"not null;uniqueIndex:idx_documento_email" json:"email"`
	Telefone              *string    `json:"telefone,omitempty"`
	EmailSecundario       *string    `json:"email_secundario,omitempty"`
	LinkAssinatura        *string    `json:"link_assinatura,omitempty"`
	TipoAcesso            *string    `json:"tipo_acesso,omitempty"`
	StatusAssinatura      string     `gorm:"not null;default:'aguardando'" json:"status_assinatura"`
	DataAssinatura        *time.Time `json:"data_assinatura,omitempty"`
}

func (AssinaturaSignatario) TableName() string {
	return "assinaturas_signatarios"
}
