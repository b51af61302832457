package models

import "fmt"

// Quality - одно из девяти физических качеств, оси радарной диаграммы
type Quality string

const (
	QualitySpeed        Quality = "speed"
	QualityPower        Quality = "power"
	QualityEndurance    Quality = "endurance"
	QualityCoordination Quality = "coordination"
	QualityAgility      Quality = "agility"
	QualityBalance      Quality = "balance"
	QualityFlexibility  Quality = "flexibility"
	QualityCore         Quality = "core"
	QualityAccuracy     Quality = "accuracy"
)

// AllQualities - порядок осей на радаре
var AllQualities = []Quality{
	QualitySpeed,
	QualityPower,
	QualityEndurance,
	QualityCoordination,
	QualityAgility,
	QualityBalance,
	QualityFlexibility,
	QualityCore,
	QualityAccuracy,
}

func (q Quality) Valid() bool {
	switch q {
	case QualitySpeed, QualityPower, QualityEndurance, QualityCoordination, QualityAgility,
		QualityBalance, QualityFlexibility, QualityCore, QualityAccuracy:
		return true
	}
	return false
}

func ParseQuality(s string) (Quality, error) {
	q := Quality(s)
	if !q.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownQuality, s)
	}
	return q, nil
}

type JumpMode string

const (
	JumpSingle JumpMode = "single"
	JumpDouble JumpMode = "double"
)

func (m JumpMode) Valid() bool {
	switch m {
	case JumpSingle, JumpDouble:
		return true
	}
	return false
}

func ParseJumpMode(s string) (JumpMode, error) {
	m := JumpMode(s)
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownJumpMode, s)
	}
	return m, nil
}

// WindowSec - длительность скоростного теста в секундах
type WindowSec int

const (
	Window10 WindowSec = 10
	Window20 WindowSec = 20
	Window30 WindowSec = 30
	Window60 WindowSec = 60
)

func (w WindowSec) Valid() bool {
	switch w {
	case Window10, Window20, Window30, Window60:
		return true
	}
	return false
}

func ParseWindow(n int) (WindowSec, error) {
	w := WindowSec(n)
	if !w.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrUnknownWindow, n)
	}
	return w, nil
}

// Period - период подготовки в тренировочном шаблоне
type Period string

const (
	PeriodPrep Period = "PREP"
	PeriodSpec Period = "SPEC"
	PeriodComp Period = "COMP"
	// PeriodAll используется только в блоках шаблона
	PeriodAll Period = "ALL"
)

func (p Period) Valid() bool {
	switch p {
	case PeriodPrep, PeriodSpec, PeriodComp:
		return true
	}
	return false
}

type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale:
		return true
	}
	return false
}

type Unit string

const (
	UnitCount Unit = "count"
	UnitCM    Unit = "cm"
	UnitSec   Unit = "s"
	UnitGrade Unit = "grade"
)

func (u Unit) Valid() bool {
	switch u {
	case UnitCount, UnitCM, UnitSec, UnitGrade:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentWechat PaymentMethod = "wechat"
	PaymentAlipay PaymentMethod = "alipay"
	PaymentCard   PaymentMethod = "card"
	PaymentOther  PaymentMethod = "other"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentWechat, PaymentAlipay, PaymentCard, PaymentOther:
		return true
	}
	return false
}

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	if s == "" {
		return PaymentOther, nil
	}
	m := PaymentMethod(s)
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownPaymentMethod, s)
	}
	return m, nil
}
