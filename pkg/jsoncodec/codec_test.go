package jsoncodec_test

import (
	"time"

	"corpkit/pkg/jsoncodec"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type event struct {
	Name string     `json:"name"`
	At   time.Time  `json:"at"`
	Tags []string   `json:"tags"`
	Note string     `json:"note"`
	Due  *time.Time `json:"due"`
}

type record struct {
	Name      *string    `json:"name"`
	DeletedAt *time.Time `json:"deletedAt"`
}

func strPtr(s string) *string {
	return &s
}

var _ = Describe("Registry", func() {
	var (
		registry *jsoncodec.Registry
		logs     *observer.ObservedLogs
	)

	BeforeEach(func() {
		var core zapcore.Core
		core, logs = observer.New(zapcore.DebugLevel)
		registry = jsoncodec.NewRegistry(
			jsoncodec.WithLogger(zap.New(core)),
			jsoncodec.WithLocation(time.UTC),
		)
	})

	It("registers exactly the six supported patterns", func() {
		Expect(registry.Patterns()).To(ConsistOf(
			"yyyyMMddHHmmss",
			"yyyy-MM-dd HH:mm:ss",
			"yyyyMMddHHmmssSSS",
			"yyyy-MM-dd",
			"yyyy/MM/dd",
			"yyyyMMdd",
		))
		Expect(registry.Default().Pattern()).To(Equal(jsoncodec.DefaultPattern))
	})

	Describe("ToJSON", func() {
		It("omits null members", func() {
			text, ok := registry.ToJSON(record{Name: strPtr("Acme")})
			Expect(ok).To(BeTrue())
			Expect(text).To(Equal(`{"name":"Acme"}`))
		})

		It("omits null members at every depth but keeps null array elements", func() {
			v := map[string]any{
				"outer": map[string]any{"gone": nil, "kept": 1},
				"list":  []any{nil, map[string]any{"gone": nil}},
				"top":   nil,
			}
			text, ok := registry.ToJSON(v)
			Expect(ok).To(BeTrue())
			Expect(text).To(Equal(`{"list":[null,{}],"outer":{"kept":1}}`))
		})

		It("writes dates with the default pattern", func() {
			at := time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)
			text, ok := registry.ToJSON(event{Name: "boot", At: at})
			Expect(ok).To(BeTrue())
			Expect(text).To(ContainSubstring(`"at":"20240305140709"`))
			Expect(text).NotTo(ContainSubstring(`"due"`))
		})

		It("does not indent", func() {
			text, ok := registry.ToJSON(map[string]any{"a": []int{1, 2}})
			Expect(ok).To(BeTrue())
			Expect(text).To(Equal(`{"a":[1,2]}`))
		})

		It("returns absent for nil input", func() {
			_, ok := registry.ToJSON(nil)
			Expect(ok).To(BeFalse())

			var r *record
			_, ok = registry.ToJSON(r)
			Expect(ok).To(BeFalse())
		})

		It("logs and returns absent when encoding fails", func() {
			_, ok := registry.ToJSON(map[string]any{"ch": make(chan int)})
			Expect(ok).To(BeFalse())
			Expect(logs.FilterMessage("object to json failed").Len()).To(Equal(1))
		})
	})

	Describe("ToJSONWithPattern", func() {
		It("returns absent and warns for an unsupported pattern", func() {
			var text string
			var ok bool
			Expect(func() {
				text, ok = registry.ToJSONWithPattern(record{Name: strPtr("Acme")}, "unsupported-pattern")
			}).NotTo(Panic())
			Expect(ok).To(BeFalse())
			Expect(text).To(BeEmpty())

			warnings := logs.FilterMessage("unsupported date pattern").FilterLevelExact(zapcore.WarnLevel)
			Expect(warnings.Len()).To(Equal(1))
			Expect(warnings.All()[0].ContextMap()).To(HaveKeyWithValue("pattern", "unsupported-pattern"))
		})

		It("returns absent without warning for a blank pattern", func() {
			_, ok := registry.ToJSONWithPattern(record{Name: strPtr("Acme")}, " ")
			Expect(ok).To(BeFalse())
			Expect(logs.Len()).To(BeZero())
		})

		It("returns absent for nil input", func() {
			_, ok := registry.ToJSONWithPattern(nil, jsoncodec.PatternDate)
			Expect(ok).To(BeFalse())
		})

		It("writes milliseconds without a separator", func() {
			at := time.Date(2024, 3, 5, 14, 7, 9, 123_000_000, time.UTC)
			text, ok := registry.ToJSONWithPattern(event{At: at}, jsoncodec.PatternCompactMillis)
			Expect(ok).To(BeTrue())
			Expect(text).To(ContainSubstring(`"at":"20240305140709123"`))
		})
	})

	DescribeTable("round trips values through every pattern",
		func(pattern string, at time.Time, wantText string) {
			due := at.Add(24 * time.Hour)
			in := event{Name: "boot", At: at, Tags: []string{"a", "b"}, Due: &due}

			text, ok := registry.ToJSONWithPattern(in, pattern)
			Expect(ok).To(BeTrue())
			Expect(text).To(ContainSubstring(`"at":"` + wantText + `"`))

			out, ok := jsoncodec.FromJSONWithPattern[event](registry, text, pattern)
			Expect(ok).To(BeTrue())
			Expect(out.Name).To(Equal(in.Name))
			Expect(out.Tags).To(Equal(in.Tags))
			Expect(out.At).To(BeTemporally("==", in.At))
			Expect(out.Due).NotTo(BeNil())
			Expect(*out.Due).To(BeTemporally("==", due))
		},
		Entry("yyyyMMddHHmmss", "yyyyMMddHHmmss",
			time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC), "20240305140709"),
		Entry("yyyy-MM-dd HH:mm:ss", "yyyy-MM-dd HH:mm:ss",
			time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC), "2024-03-05 14:07:09"),
		Entry("yyyyMMddHHmmssSSS", "yyyyMMddHHmmssSSS",
			time.Date(2024, 3, 5, 14, 7, 9, 7_000_000, time.UTC), "20240305140709007"),
		Entry("yyyy-MM-dd", "yyyy-MM-dd",
			time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), "2024-03-05"),
		Entry("yyyy/MM/dd", "yyyy/MM/dd",
			time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), "2024/03/05"),
		Entry("yyyyMMdd", "yyyyMMdd",
			time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), "20240305"),
	)

	Describe("FromJSON", func() {
		It("returns absent for blank input without logging", func() {
			_, ok := jsoncodec.FromJSON[event](registry, "")
			Expect(ok).To(BeFalse())

			_, ok = jsoncodec.FromJSON[event](registry, "  \n")
			Expect(ok).To(BeFalse())
			Expect(logs.Len()).To(BeZero())
		})

		It("ignores unknown members", func() {
			out, ok := jsoncodec.FromJSON[event](registry, `{"name":"boot","extra":{"deep":[1,2]},"at":"20240305140709"}`)
			Expect(ok).To(BeTrue())
			Expect(out.Name).To(Equal("boot"))
			Expect(out.At).To(BeTemporally("==", time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)))
		})

		It("accepts relaxed syntax", func() {
			text := "{name:'boot', tags:['a','b'], note:\"line1\nline2\"}"
			out, ok := jsoncodec.FromJSON[event](registry, text)
			Expect(ok).To(BeTrue())
			Expect(out.Name).To(Equal("boot"))
			Expect(out.Tags).To(Equal([]string{"a", "b"}))
			Expect(out.Note).To(Equal("line1\nline2"))
		})

		It("reads dates given as epoch milliseconds", func() {
			out, ok := jsoncodec.FromJSON[event](registry, `{"at":1709647629000}`)
			Expect(ok).To(BeTrue())
			Expect(out.At).To(BeTemporally("==", time.UnixMilli(1709647629000)))
		})

		It("decodes generic containers from the type argument", func() {
			list, ok := jsoncodec.FromJSON[[]event](registry, `[{"name":"a","at":"20240101000000"},{"name":"b"}]`)
			Expect(ok).To(BeTrue())
			Expect(list).To(HaveLen(2))
			Expect(list[0].At).To(BeTemporally("==", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
			Expect(list[1].Name).To(Equal("b"))

			byKey, ok := jsoncodec.FromJSON[map[string]event](registry, `{"x":{"name":"a"}}`)
			Expect(ok).To(BeTrue())
			Expect(byKey).To(HaveKey("x"))
			Expect(byKey["x"].Name).To(Equal("a"))
		})

		It("matches member names case-sensitively", func() {
			out, ok := jsoncodec.FromJSON[record](registry, `{"NAME":"upper"}`)
			Expect(ok).To(BeTrue())
			Expect(out.Name).To(BeNil())

			out, ok = jsoncodec.FromJSON[record](registry, `{"name":"lower","Name":"title"}`)
			Expect(ok).To(BeTrue())
			Expect(out.Name).To(HaveValue(Equal("lower")))
		})

		It("accepts bare member names outside ASCII", func() {
			out, ok := jsoncodec.FromJSON[map[string]string](registry, `{名前: 'x'}`)
			Expect(ok).To(BeTrue())
			Expect(out).To(HaveKeyWithValue("名前", "x"))
		})

		It("warns for a blank pattern", func() {
			_, ok := jsoncodec.FromJSONWithPattern[record](registry, `{"name":"Acme"}`, "")
			Expect(ok).To(BeFalse())

			warnings := logs.FilterMessage("unsupported date pattern").FilterLevelExact(zapcore.WarnLevel)
			Expect(warnings.Len()).To(Equal(1))
		})

		It("logs and returns absent for a date in the wrong pattern", func() {
			_, ok := jsoncodec.FromJSON[event](registry, `{"at":"2024-03-05"}`)
			Expect(ok).To(BeFalse())
			Expect(logs.FilterMessage("json to object failed").Len()).To(Equal(1))
		})

		It("returns absent and warns for an unsupported pattern", func() {
			_, ok := jsoncodec.FromJSONWithPattern[event](registry, `{"name":"boot"}`, "dd.MM.yyyy")
			Expect(ok).To(BeFalse())
			Expect(logs.FilterMessage("unsupported date pattern").Len()).To(Equal(1))
		})
	})

	Describe("strict variants", func() {
		It("propagate decoding failures", func() {
			_, err := jsoncodec.Unmarshal[event](registry, `{"name": [}`)
			Expect(err).To(HaveOccurred())
			Expect(logs.Len()).To(BeZero())
		})

		It("report blank input as ErrEmptyDocument", func() {
			_, err := jsoncodec.Unmarshal[event](registry, "")
			Expect(err).To(MatchError(jsoncodec.ErrEmptyDocument))
		})

		It("report nil values as ErrNilValue", func() {
			_, err := registry.Marshal(nil)
			Expect(err).To(MatchError(jsoncodec.ErrNilValue))
		})

		It("propagate encoding failures", func() {
			_, err := registry.Marshal(map[string]any{"ch": make(chan int)})
			Expect(err).To(HaveOccurred())
		})

		It("decode with a looked-up codec", func() {
			codec, ok := registry.Lookup(jsoncodec.PatternSlashDate)
			Expect(ok).To(BeTrue())

			var out event
			Expect(codec.Unmarshal(`{"at":"2024/03/05"}`, &out)).To(Succeed())
			Expect(out.At).To(BeTemporally("==", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)))

			text, err := codec.Marshal(out)
			Expect(err).NotTo(HaveOccurred())
			Expect(text).To(ContainSubstring(`"at":"2024/03/05"`))
		})
	})

	It("formats dates in the configured location", func() {
		seoul := time.FixedZone("KST", 9*60*60)
		r := jsoncodec.NewRegistry(jsoncodec.WithLocation(seoul))

		text, ok := r.ToJSON(event{At: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)})
		Expect(ok).To(BeTrue())
		Expect(text).To(ContainSubstring(`"at":"20240305090000"`))
	})
})
