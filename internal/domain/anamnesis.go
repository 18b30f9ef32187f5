package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AnamnesiQuestion is a boolean question with an optional free-text detail
// ("presente: sì — dettaglio: dolore al ginocchio destro").
type AnamnesiQuestion struct {
	Presente  bool   `bson:"presente" json:"presente"`
	Dettaglio string `bson:"dettaglio,omitempty" json:"dettaglio,omitempty"`
}

// Lifestyle enums collected in the questionnaire.
type (
	ActivityLevel string
	SleepQuality  string
	StressLevel   string
)

const (
	ActivitySedentary ActivityLevel = "sedentario"
	ActivityLight     ActivityLevel = "leggero"
	ActivityModerate  ActivityLevel = "moderato"
	ActivityIntense   ActivityLevel = "intenso"

	SleepPoor SleepQuality = "scarso"
	SleepFair SleepQuality = "sufficiente"
	SleepGood SleepQuality = "buono"

	StressLow    StressLevel = "basso"
	StressMedium StressLevel = "medio"
	StressHigh   StressLevel = "alto"
)

// AnamnesiData is the client's medical/lifestyle history questionnaire.
// The free-text detail fields are scanned by the safety engine for body-part
// and medical-condition keywords.
type AnamnesiData struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClientID  primitive.ObjectID `bson:"clientId" json:"clientId"`
	TrainerID primitive.ObjectID `bson:"trainerId" json:"trainerId"`

	InfortuniAttuali    AnamnesiQuestion `bson:"infortuniAttuali" json:"infortuni_attuali"`
	InfortuniPassati    AnamnesiQuestion `bson:"infortuniPassati" json:"infortuni_passati"`
	Interventi          AnamnesiQuestion `bson:"interventi" json:"interventi"`
	DoloriCronici       AnamnesiQuestion `bson:"doloriCronici" json:"dolori_cronici"`
	Patologie           AnamnesiQuestion `bson:"patologie" json:"patologie"`
	ProblemiCardiaci    AnamnesiQuestion `bson:"problemiCardiaci" json:"problemi_cardiaci"`
	ProblemiRespiratori AnamnesiQuestion `bson:"problemiRespiratori" json:"problemi_respiratori"`

	LivelloAttivita ActivityLevel `bson:"livelloAttivita,omitempty" json:"livello_attivita,omitempty"`
	QualitaSonno    SleepQuality  `bson:"qualitaSonno,omitempty" json:"qualita_sonno,omitempty"`
	LivelloStress   StressLevel   `bson:"livelloStress,omitempty" json:"livello_stress,omitempty"`

	Obiettivi   string `bson:"obiettivi,omitempty" json:"obiettivi,omitempty"`
	Limitazioni string `bson:"limitazioni,omitempty" json:"limitazioni,omitempty"`
	Note        string `bson:"note,omitempty" json:"note,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// TextFields returns every free-text field worth scanning for keywords,
// in questionnaire order.
func (a *AnamnesiData) TextFields() []string {
	return []string{
		a.InfortuniAttuali.Dettaglio,
		a.InfortuniPassati.Dettaglio,
		a.Interventi.Dettaglio,
		a.DoloriCronici.Dettaglio,
		a.Patologie.Dettaglio,
		a.ProblemiCardiaci.Dettaglio,
		a.ProblemiRespiratori.Dettaglio,
		a.Limitazioni,
		a.Note,
	}
}
