// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

package mbti

// questions is the fixed questionnaire: five items per axis, mixing both
// poles so acquiescent answering does not bias the result.
var questions = []Question{
	{ID: 1, Dimension: EI, Axis: "EI", Pole: "E", Text: "처음 만난 사람과도 금방 편하게 대화를 나눈다."},
	{ID: 2, Dimension: SN, Axis: "SN", Pole: "S", Text: "새로운 일을 할 때 구체적인 사례와 경험을 먼저 찾아본다."},
	{ID: 3, Dimension: TF, Axis: "TF", Pole: "T", Text: "결정을 내릴 때 감정보다 논리와 근거를 우선한다."},
	{ID: 4, Dimension: JP, Axis: "JP", Pole: "J", Text: "여행을 가기 전에 일정을 꼼꼼하게 계획해 둔다."},
	{ID: 5, Dimension: EI, Axis: "EI", Pole: "I", Text: "주말에는 혼자만의 시간을 보내며 에너지를 충전한다."},
	{ID: 6, Dimension: SN, Axis: "SN", Pole: "N", Text: "현재보다 미래의 가능성을 상상하는 것이 즐겁다."},
	{ID: 7, Dimension: TF, Axis: "TF", Pole: "F", Text: "친구의 고민을 들으면 해결책보다 공감이 먼저 나온다."},
	{ID: 8, Dimension: JP, Axis: "JP", Pole: "P", Text: "계획이 바뀌어도 크게 스트레스를 받지 않는다."},
	{ID: 9, Dimension: EI, Axis: "EI", Pole: "E", Text: "여러 사람이 모인 자리에서 대화를 이끄는 편이다."},
	{ID: 10, Dimension: SN, Axis: "SN", Pole: "S", Text: "설명서를 처음부터 차례대로 읽는 편이다."},
	{ID: 11, Dimension: TF, Axis: "TF", Pole: "T", Text: "상대가 서운해하더라도 틀린 점은 분명히 지적한다."},
	{ID: 12, Dimension: JP, Axis: "JP", Pole: "J", Text: "마감 기한보다 여유 있게 일을 끝내 두어야 마음이 편하다."},
	{ID: 13, Dimension: EI, Axis: "EI", Pole: "I", Text: "생각을 충분히 정리한 뒤에 말하는 편이다."},
	{ID: 14, Dimension: SN, Axis: "SN", Pole: "N", Text: "대화 중에 엉뚱한 비유나 아이디어가 자주 떠오른다."},
	{ID: 15, Dimension: TF, Axis: "TF", Pole: "F", Text: "팀의 분위기와 관계를 성과만큼 중요하게 생각한다."},
	{ID: 16, Dimension: JP, Axis: "JP", Pole: "P", Text: "할 일 목록 없이 그때그때 떠오르는 대로 일한다."},
	{ID: 17, Dimension: EI, Axis: "EI", Pole: "E", Text: "새로운 모임이나 행사에 참여하는 것이 설렌다."},
	{ID: 18, Dimension: SN, Axis: "SN", Pole: "S", Text: "검증된 방법을 따르는 것이 가장 효율적이라고 생각한다."},
	{ID: 19, Dimension: TF, Axis: "TF", Pole: "T", Text: "토론에서 이기는 것보다 정확한 결론이 더 중요하다."},
	{ID: 20, Dimension: JP, Axis: "JP", Pole: "P", Text: "선택지를 끝까지 열어 두는 것을 좋아한다."},
}
