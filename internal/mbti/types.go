// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

package mbti

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidType is returned for strings that are not one of the 16 types.
var ErrInvalidType = errors.New("invalid MBTI type")

// Dimension is one of the four preference axes.
type Dimension int

const (
	EI Dimension = iota // Extraversion / Introversion
	SN                  // Sensing / Intuition
	TF                  // Thinking / Feeling
	JP                  // Judging / Perceiving
)

// Dimensions lists the axes in type-letter order.
var Dimensions = [4]Dimension{EI, SN, TF, JP}

var dimensionPoles = [4][2]byte{
	EI: {'E', 'I'},
	SN: {'S', 'N'},
	TF: {'T', 'F'},
	JP: {'J', 'P'},
}

var dimensionNames = [4]string{"EI", "SN", "TF", "JP"}

func (d Dimension) String() string {
	if d < EI || d > JP {
		return fmt.Sprintf("Dimension(%d)", int(d))
	}
	return dimensionNames[d]
}

// Poles returns the first and second letters of the axis.
func (d Dimension) Poles() (first, second byte) {
	p := dimensionPoles[d]
	return p[0], p[1]
}

// Type is a four-letter MBTI type such as "INTJ".
type Type string

// ParseType normalizes s and checks each letter against its axis.
func ParseType(s string) (Type, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) != 4 {
		return "", fmt.Errorf("%w: %q", ErrInvalidType, s)
	}
	for i, d := range Dimensions {
		first, second := d.Poles()
		if s[i] != first && s[i] != second {
			return "", fmt.Errorf("%w: %q has %q in the %s position", ErrInvalidType, s, s[i], d)
		}
	}
	return Type(s), nil
}

// Letter returns the type's letter on axis d.
func (t Type) Letter(d Dimension) byte {
	return t[d]
}

// Temperament returns the Keirsey group: NT, NF, SJ or SP.
func (t Type) Temperament() string {
	if t.Letter(SN) == 'N' {
		return "N" + string(t.Letter(TF))
	}
	return "S" + string(t.Letter(JP))
}

// Profile is the static description of a type.
type Profile struct {
	Type        Type   `json:"type"`
	Nickname    string `json:"nickname"`
	Summary     string `json:"summary"`
	Temperament string `json:"temperament"`
}

var profiles = map[Type]Profile{
	"ISTJ": {Nickname: "청렴결백한 논리주의자", Summary: "사실과 원칙을 중시하며 맡은 일을 끝까지 책임지는 현실주의자입니다."},
	"ISFJ": {Nickname: "용감한 수호자", Summary: "주변 사람을 세심하게 챙기고 묵묵히 헌신하는 따뜻한 보호자입니다."},
	"INFJ": {Nickname: "선의의 옹호자", Summary: "깊은 통찰과 신념으로 사람들에게 의미 있는 영향을 주는 이상주의자입니다."},
	"INTJ": {Nickname: "용의주도한 전략가", Summary: "장기적인 계획을 세우고 독립적으로 목표를 달성하는 전략가입니다."},
	"ISTP": {Nickname: "만능 재주꾼", Summary: "상황을 냉철하게 분석하고 손으로 문제를 해결하는 실용주의자입니다."},
	"ISFP": {Nickname: "호기심 많은 예술가", Summary: "감각이 섬세하고 지금 이 순간의 아름다움을 즐기는 자유로운 예술가입니다."},
	"INFP": {Nickname: "열정적인 중재자", Summary: "내면의 가치를 소중히 여기며 타인의 가능성을 믿는 이상주의자입니다."},
	"INTP": {Nickname: "논리적인 사색가", Summary: "끝없는 호기심으로 원리를 파고드는 분석적인 사상가입니다."},
	"ESTP": {Nickname: "모험을 즐기는 사업가", Summary: "에너지가 넘치고 행동으로 기회를 잡는 현실적인 모험가입니다."},
	"ESFP": {Nickname: "자유로운 영혼의 연예인", Summary: "주변을 즐겁게 만들고 사람들과 어울리기를 좋아하는 분위기 메이커입니다."},
	"ENFP": {Nickname: "재기발랄한 활동가", Summary: "열정과 상상력으로 새로운 가능성을 찾아 나서는 활동가입니다."},
	"ENTP": {Nickname: "뜨거운 논쟁을 즐기는 변론가", Summary: "기발한 아이디어로 기존의 틀에 도전하는 지적인 도전자입니다."},
	"ESTJ": {Nickname: "엄격한 관리자", Summary: "질서와 규칙을 바탕으로 조직을 이끄는 추진력 있는 관리자입니다."},
	"ESFJ": {Nickname: "사교적인 외교관", Summary: "배려심이 깊고 공동체의 조화를 중요하게 여기는 친절한 조력자입니다."},
	"ENFJ": {Nickname: "정의로운 사회운동가", Summary: "사람들의 성장을 돕고 함께 나아가도록 이끄는 카리스마 있는 리더입니다."},
	"ENTJ": {Nickname: "대담한 통솔자", Summary: "대담한 비전과 결단력으로 사람들을 이끄는 타고난 지도자입니다."},
}

// LookupProfile returns the profile of t.
func LookupProfile(t Type) (Profile, bool) {
	p, ok := profiles[t]
	if !ok {
		return Profile{}, false
	}
	p.Type = t
	p.Temperament = t.Temperament()
	return p, true
}

// AllTypes returns the sixteen types in a stable order.
func AllTypes() []Type {
	out := make([]Type, 0, len(profiles))
	for _, e := range []byte{'E', 'I'} {
		for _, s := range []byte{'S', 'N'} {
			for _, tf := range []byte{'T', 'F'} {
				for _, j := range []byte{'J', 'P'} {
					out = append(out, Type([]byte{e, s, tf, j}))
				}
			}
		}
	}
	return out
}
