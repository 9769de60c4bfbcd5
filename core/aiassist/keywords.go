package aiassist

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mkabeya/ratiba/core/course"
)

const maxKeywords = 5

// keywordDelimiters are the fixed separators for keyword extraction:
// half/full-width punctuation; whitespace is handled separately.
const keywordDelimiters = ",.!?;:()[]\"'，。！？、；：“”‘’（）【】《》·—-"

// chapterEntry maps a domain keyword to curriculum references. This is a plain
// ordered lookup table: scan order decides first-seen link order.
type chapterEntry struct {
	keyword string
	links   []ChapterLink
}

var chapterCatalog = []chapterEntry{
	{"傅里叶", []ChapterLink{
		{CourseName: "信号与系统", ChapterLabel: "第4章 傅里叶变换", Reason: "keyword match: 傅里叶"},
		{CourseName: "数字信号处理", ChapterLabel: "第3章 离散傅里叶变换", Reason: "keyword match: 傅里叶"},
	}},
	{"fourier", []ChapterLink{
		{CourseName: "信号与系统", ChapterLabel: "第4章 傅里叶变换", Reason: "keyword match: fourier"},
		{CourseName: "数字信号处理", ChapterLabel: "第3章 离散傅里叶变换", Reason: "keyword match: fourier"},
	}},
	{"卷积", []ChapterLink{
		{CourseName: "信号与系统", ChapterLabel: "第2章 线性时不变系统", Reason: "keyword match: 卷积"},
	}},
	{"convolution", []ChapterLink{
		{CourseName: "信号与系统", ChapterLabel: "第2章 线性时不变系统", Reason: "keyword match: convolution"},
	}},
	{"矩阵", []ChapterLink{
		{CourseName: "线性代数", ChapterLabel: "第2章 矩阵及其运算", Reason: "keyword match: 矩阵"},
	}},
	{"matrix", []ChapterLink{
		{CourseName: "线性代数", ChapterLabel: "第2章 矩阵及其运算", Reason: "keyword match: matrix"},
	}},
	{"特征值", []ChapterLink{
		{CourseName: "线性代数", ChapterLabel: "第5章 特征值与特征向量", Reason: "keyword match: 特征值"},
	}},
	{"导数", []ChapterLink{
		{CourseName: "高等数学", ChapterLabel: "第2章 导数与微分", Reason: "keyword match: 导数"},
	}},
	{"derivative", []ChapterLink{
		{CourseName: "高等数学", ChapterLabel: "第2章 导数与微分", Reason: "keyword match: derivative"},
	}},
	{"积分", []ChapterLink{
		{CourseName: "高等数学", ChapterLabel: "第5章 定积分", Reason: "keyword match: 积分"},
	}},
	{"integral", []ChapterLink{
		{CourseName: "高等数学", ChapterLabel: "第5章 定积分", Reason: "keyword match: integral"},
	}},
	{"概率", []ChapterLink{
		{CourseName: "概率论与数理统计", ChapterLabel: "第1章 随机事件与概率", Reason: "keyword match: 概率"},
	}},
	{"probability", []ChapterLink{
		{CourseName: "概率论与数理统计", ChapterLabel: "第1章 随机事件与概率", Reason: "keyword match: probability"},
	}},
	{"链表", []ChapterLink{
		{CourseName: "数据结构", ChapterLabel: "第2章 线性表", Reason: "keyword match: 链表"},
	}},
	{"二叉树", []ChapterLink{
		{CourseName: "数据结构", ChapterLabel: "第5章 树与二叉树", Reason: "keyword match: 二叉树"},
	}},
	{"排序", []ChapterLink{
		{CourseName: "数据结构", ChapterLabel: "第8章 排序", Reason: "keyword match: 排序"},
	}},
	{"指针", []ChapterLink{
		{CourseName: "C语言程序设计", ChapterLabel: "第8章 指针", Reason: "keyword match: 指针"},
	}},
	{"电路", []ChapterLink{
		{CourseName: "电路分析基础", ChapterLabel: "第3章 电路定理", Reason: "keyword match: 电路"},
	}},
}

// ExtractKeywords returns up to 5 tokens of rune length [2,8] ranked by
// frequency, ties broken by first occurrence.
func ExtractKeywords(text string) []string {
	tokens := strings.FieldsFunc(text, func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune(keywordDelimiters, r)
	})

	counts := make(map[string]int)
	var order []string
	for _, tok := range tokens {
		length := utf8.RuneCountInString(tok)
		if length < 2 || length > 8 {
			continue
		}
		if _, seen := counts[tok]; !seen {
			order = append(order, tok)
		}
		counts[tok]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > maxKeywords {
		order = order[:maxKeywords]
	}
	return order
}

// MatchChapters scans text case-insensitively against the chapter catalog and
// against the candidate courses (first 4 runes of the course name). The result
// never contains duplicate (courseName, chapterLabel) pairs; first match wins.
func MatchChapters(text string, courses []course.Course) []ChapterLink {
	lower := strings.ToLower(text)
	if strings.TrimSpace(lower) == "" {
		return nil
	}

	var links []ChapterLink
	seen := make(map[[2]string]bool)
	add := func(link ChapterLink) {
		key := [2]string{link.CourseName, link.ChapterLabel}
		if !seen[key] {
			seen[key] = true
			links = append(links, link)
		}
	}

	for _, entry := range chapterCatalog {
		if strings.Contains(lower, strings.ToLower(entry.keyword)) {
			for _, link := range entry.links {
				add(link)
			}
		}
	}

	for _, crs := range courses {
		prefix := strings.ToLower(firstRunes(strings.TrimSpace(crs.Name), 4))
		if prefix == "" {
			continue
		}
		if strings.Contains(lower, prefix) {
			add(ChapterLink{
				CourseName:   crs.Name,
				ChapterLabel: "lecture highlight",
				Reason:       fmt.Sprintf("the text mentions your course %s", crs.Name),
			})
		}
	}
	return links
}
