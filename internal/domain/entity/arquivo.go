package entity

import "time"

// TipoArquivo distinguishes individual evidence documents from the final
// merged contract package.
type TipoArquivo string

const (
	TipoIndividual TipoArquivo = "INDIVIDUAL"
	TipoFinal      TipoArquivo = "FINAL"
)

// Arquivo is one stored PDF in the blob store, linked to a Processo.
// PublicID is the namespaced remote identifier and is unique system-wide.
type Arquivo struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	ProcessoID uint        `gorm:"not null;index" json:"processo_id"`
	Etapa      string      `gorm:"not null" json:"etapa"`
	PublicID   string      `gorm:"uniqueIndex;not null" json:"public_id"`
	URL        string      `gorm:"not null" json:"url"`
	Tipo       TipoArquivo `gorm:"type:varchar(20);not null;default:'INDIVIDUAL'" json:"tipo"`
	CriadoEm   time.Time   `gorm:"autoCreateTime" json:"criado_em"`
}

func (Arquivo) TableName() string {
	return "arquivos"
}
